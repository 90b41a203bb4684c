package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	flag "github.com/spf13/pflag"
)

var (
	// ErrUnknownConfigFormat is returned if the format of the config file is unknown.
	ErrUnknownConfigFormat = errors.New("unknown config file format")
	// ErrUnsupportedParameterType is returned if a bound struct contains a field of an unsupported type.
	ErrUnsupportedParameterType = errors.New("unsupported parameter type")
)

// Configuration holds config parameters from several sources (file, env vars, flags).
type Configuration struct {
	config *koanf.Koanf
	// boundParameters keeps track of all parameters that were bound using the BindParameters function.
	boundParameters map[string]*BoundParameter
}

// New returns a new configuration.
func New() *Configuration {
	return &Configuration{
		config:          koanf.New("."),
		boundParameters: make(map[string]*BoundParameter),
	}
}

// LoadFile loads parameters from a JSON or YAML file and merges them into the loaded config.
// Existing keys will be overwritten.
func (c *Configuration) LoadFile(filePath string) error {
	if _, err := os.Stat(filePath); err != nil {
		return errors.Wrapf(err, "unable to load config file %s", filePath)
	}

	parser, err := parserForFile(filePath)
	if err != nil {
		return err
	}

	return c.config.Load(file.Provider(filePath), parser)
}

// StoreFile stores the current config to a JSON or YAML file.
func (c *Configuration) StoreFile(filePath string) error {
	parser, err := parserForFile(filePath)
	if err != nil {
		return err
	}

	data, err := parser.Marshal(c.config.Raw())
	if err != nil {
		return errors.Wrap(err, "unable to marshal config file")
	}

	if err := os.WriteFile(filePath, data, 0o600); err != nil {
		return errors.Wrap(err, "unable to save config file")
	}

	return nil
}

func parserForFile(filePath string) (koanf.Parser, error) {
	switch filepath.Ext(filePath) {
	case ".json":
		return &JSONLowerParser{indent: "  "}, nil
	case ".yaml", ".yml":
		return &YAMLLowerParser{}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownConfigFormat, "file %s", filePath)
	}
}

// LoadFlagSet loads parameters from a FlagSet (spf13/pflag lib) including
// default values and merges them into the loaded config.
// Existing keys will only be overwritten, if they were set via command line.
// If not given via command line, default values will only be used if they did not exist beforehand.
func (c *Configuration) LoadFlagSet(flagSet *flag.FlagSet) error {
	return c.config.Load(lowerPosflagProvider(flagSet, ".", c.config), nil)
}

// LoadEnvironmentVars loads parameters from env vars and merges them into the loaded config.
// The prefix is used to filter the env vars.
// Only existing keys will be overwritten, all other keys are ignored.
func (c *Configuration) LoadEnvironmentVars(prefix string) error {
	if prefix != "" {
		prefix += "_"
	}

	return c.config.Load(env.Provider(prefix, ".", func(s string) string {
		mapKey := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, prefix)), "_", ".")
		if !c.config.Exists(mapKey) {
			// only accept values from env vars that already exist in the config
			return ""
		}

		return mapKey
	}), nil)
}

// Koanf returns the underlying Koanf instance.
func (c *Configuration) Koanf() *koanf.Koanf {
	return c.config
}

// All returns all loaded parameters as a nested map.
func (c *Configuration) All() map[string]interface{} {
	return c.config.Raw()
}

// Exists returns true if the given key is set.
func (c *Configuration) Exists(key string) bool {
	return c.config.Exists(strings.ToLower(key))
}

// String returns the string value of the given key.
func (c *Configuration) String(key string) string {
	return c.config.String(strings.ToLower(key))
}

// Strings returns the string slice value of the given key.
func (c *Configuration) Strings(key string) []string {
	return c.config.Strings(strings.ToLower(key))
}

// Bool returns the bool value of the given key.
func (c *Configuration) Bool(key string) bool {
	return c.config.Bool(strings.ToLower(key))
}

// Int returns the int value of the given key.
func (c *Configuration) Int(key string) int {
	return c.config.Int(strings.ToLower(key))
}

// Int64 returns the int64 value of the given key.
func (c *Configuration) Int64(key string) int64 {
	return c.config.Int64(strings.ToLower(key))
}

// Float64 returns the float64 value of the given key.
func (c *Configuration) Float64(key string) float64 {
	return c.config.Float64(strings.ToLower(key))
}

// Duration returns the time.Duration value of the given key.
func (c *Configuration) Duration(key string) time.Duration {
	return c.config.Duration(strings.ToLower(key))
}

// BoundParameter stores the pointer and the type of values that were bound using the BindParameters function.
type BoundParameter struct {
	boundPointer interface{}
	boundType    reflect.Type
}

// BindParameters is a utility function that allows to define and bind a set of parameters in a single step by using a
// struct as the registry and definition for the created configuration parameters. It parses the relevant information
// from the struct using reflection and optionally provided information in the tags of its fields.
//
// The parameter names are determined by the names of the fields in the struct but they can be overridden by providing a
// name tag.
// The default value is determined by the value of the field in the struct but it can be overridden by
// providing a default tag.
// The usage information are determined by the usage tag of the field.
//
// Nested structs are translated to parameter names in the following way:
// --namespace.level1.level2.parameterName
func (c *Configuration) BindParameters(flagSet *flag.FlagSet, namespace string, pointerToStruct interface{}) error {
	val := reflect.ValueOf(pointerToStruct).Elem()
	for i := 0; i < val.NumField(); i++ {
		valueField := val.Field(i)
		typeField := val.Type().Field(i)

		name := lowerCamelCase(typeField.Name)
		if tagName, exists := typeField.Tag.Lookup("name"); exists {
			name = tagName
		}
		if namespace != "" {
			name = namespace + "." + name
		}

		shortHand := typeField.Tag.Get("shorthand")
		usage := typeField.Tag.Get("usage")
		tagDefault, hasTagDefault := typeField.Tag.Lookup("default")

		switch ptr := valueField.Addr().Interface().(type) {
		case *bool:
			defaultValue := *ptr
			if hasTagDefault {
				defaultValue = tagDefault == "true"
			}
			flagSet.BoolVarP(ptr, name, shortHand, defaultValue, usage)
		case *time.Duration:
			defaultValue := *ptr
			if hasTagDefault {
				parsed, err := time.ParseDuration(tagDefault)
				if err != nil {
					return errors.Wrapf(err, "invalid default value for parameter %s", name)
				}
				defaultValue = parsed
			}
			flagSet.DurationVarP(ptr, name, shortHand, defaultValue, usage)
		case *int:
			defaultValue := *ptr
			if hasTagDefault {
				if err := sscan(tagDefault, &defaultValue); err != nil {
					return errors.Wrapf(err, "invalid default value for parameter %s", name)
				}
			}
			flagSet.IntVarP(ptr, name, shortHand, defaultValue, usage)
		case *int64:
			defaultValue := *ptr
			if hasTagDefault {
				if err := sscan(tagDefault, &defaultValue); err != nil {
					return errors.Wrapf(err, "invalid default value for parameter %s", name)
				}
			}
			flagSet.Int64VarP(ptr, name, shortHand, defaultValue, usage)
		case *uint64:
			defaultValue := *ptr
			if hasTagDefault {
				if err := sscan(tagDefault, &defaultValue); err != nil {
					return errors.Wrapf(err, "invalid default value for parameter %s", name)
				}
			}
			flagSet.Uint64VarP(ptr, name, shortHand, defaultValue, usage)
		case *float64:
			defaultValue := *ptr
			if hasTagDefault {
				if err := sscan(tagDefault, &defaultValue); err != nil {
					return errors.Wrapf(err, "invalid default value for parameter %s", name)
				}
			}
			flagSet.Float64VarP(ptr, name, shortHand, defaultValue, usage)
		case *string:
			defaultValue := *ptr
			if hasTagDefault {
				defaultValue = tagDefault
			}
			flagSet.StringVarP(ptr, name, shortHand, defaultValue, usage)
		case *[]string:
			defaultValue := *ptr
			if hasTagDefault {
				defaultValue = strings.Split(tagDefault, ",")
			}
			flagSet.StringSliceVarP(ptr, name, shortHand, defaultValue, usage)
		default:
			if valueField.Kind() != reflect.Struct {
				return errors.Wrapf(ErrUnsupportedParameterType, "parameter %s has type %s", name, valueField.Type())
			}

			if err := c.BindParameters(flagSet, name, ptr); err != nil {
				return err
			}

			continue
		}

		c.boundParameters[name] = &BoundParameter{
			boundPointer: valueField.Addr().Interface(),
			boundType:    valueField.Type(),
		}
	}

	return nil
}

// UpdateBoundParameters updates parameters that were bound using the BindParameters method with the current values in
// the configuration.
func (c *Configuration) UpdateBoundParameters() {
	for parameterName, boundParameter := range c.boundParameters {
		if !c.Exists(parameterName) {
			continue
		}

		switch ptr := boundParameter.boundPointer.(type) {
		case *bool:
			*ptr = c.Bool(parameterName)
		case *time.Duration:
			*ptr = c.Duration(parameterName)
		case *int:
			*ptr = c.Int(parameterName)
		case *int64:
			*ptr = c.Int64(parameterName)
		case *uint64:
			*ptr = uint64(c.Int64(parameterName))
		case *float64:
			*ptr = c.Float64(parameterName)
		case *string:
			*ptr = c.String(parameterName)
		case *[]string:
			*ptr = c.Strings(parameterName)
		}
	}
}

func sscan(str string, ptr interface{}) error {
	_, err := fmt.Sscan(str, ptr)

	return err
}

func lowerCamelCase(str string) string {
	runes := []rune(str)
	runeCount := len(runes)

	if runeCount == 0 || unicode.IsLower(runes[0]) {
		return str
	}

	runes[0] = unicode.ToLower(runes[0])
	if runeCount == 1 || unicode.IsLower(runes[1]) {
		return string(runes)
	}

	for i := 1; i < runeCount; i++ {
		if i+1 < runeCount && unicode.IsLower(runes[i+1]) {
			break
		}

		runes[i] = unicode.ToLower(runes[i])
	}

	return string(runes)
}
