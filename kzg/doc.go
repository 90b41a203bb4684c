// Copyright 2020 IOTA Stiftung
// SPDX-License-Identifier: Apache-2.0

// Package kzg implements Kate-Zaverucha-Goldberg polynomial commitments over BLS12-381 for blobs
// of 4096 field elements, as used for sharded data availability.
// See:
// - https://www.iacr.org/archive/asiacrypt2010/6477178/6477178.pdf
// - https://dankradfeist.de/ethereum/2020/06/16/kate-polynomial-commitments.html
// - https://dankradfeist.de/ethereum/2021/06/18/pcs-multiproofs.html
//
// A blob is the evaluation form of a polynomial of degree < 4096 over the 4096-th roots of unity,
// in bit-reversed order. Each element is encoded little-endian in 32 bytes and must be smaller than
// the scalar field modulus.
//
// The trusted setup holds the powers of an unknown secret s on G1 ([sⁱ]₁, monomial order) and G2.
// On load it is converted to the Lagrange basis [Lᵢ(s)]₁ of the bit-reversed domain, so committing to
// a blob is a single multi-scalar multiplication with its elements.
//
// Several blobs are proven by one aggregate proof: the blobs are combined with the powers of a
// Fiat-Shamir challenge r derived from the blobs and their commitments, and the combined polynomial
// is opened at a second challenge z.
//
// The trusted setup is owned by a Manager. A loaded setup is referenced by a Handle, which can be used
// concurrently until it is freed. The package level functions use a process-wide Manager.
package kzg
