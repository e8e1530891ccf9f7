package domain

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// CosetDomain is a domain that has been shifted by a coset generator.
type CosetDomain struct {
	domain *Domain
	coset  FFTCoset
}

// FFTCoset is a pair of elements used to define a coset FFT.
type FFTCoset struct {
	// CosetGen is the generator element of the coset.
	CosetGen fr.Element
	// InvCosetGen is the inverse of the coset generator.
	InvCosetGen fr.Element
}

// NewCosetDomain returns a CosetDomain that evaluates polynomials over the
// coset `fft_coset.CosetGen * <domain.Generator>`.
func NewCosetDomain(domain *Domain, fftCoset FFTCoset) *CosetDomain {
	return &CosetDomain{
		domain: domain,
		coset:  fftCoset,
	}
}

// CosetFFtFr computes an FFT of the field elements over the coset.
//
// The elements are returned in order as opposed to being returned in
// bit-reversed order.
func (d *CosetDomain) CosetFFtFr(values []fr.Element) []fr.Element {
	result := make([]fr.Element, len(values))
	d.CosetFFtFrInto(values, result)
	return result
}

// CosetFFtFrInto computes a coset FFT and writes the result to the output
// parameter.
func (d *CosetDomain) CosetFFtFrInto(values []fr.Element, output []fr.Element) {
	cosetScale := fr.One()
	for i := 0; i < len(values); i++ {
		output[i].Mul(&values[i], &cosetScale)
		cosetScale.Mul(&cosetScale, &d.coset.CosetGen)
	}

	fftFr(output, d.domain.Generator)
}

// CosetIFFtFr computes an inverse FFT of the field elements over the coset.
//
// The elements are returned in order as opposed to being returned in
// bit-reversed order.
func (d *CosetDomain) CosetIFFtFr(values []fr.Element) []fr.Element {
	result := make([]fr.Element, len(values))
	d.CosetIFFtFrInto(values, result)
	return result
}

// CosetIFFtFrInto computes an inverse coset FFT and writes the result to the
// output parameter.
func (d *CosetDomain) CosetIFFtFrInto(values []fr.Element, output []fr.Element) {
	copy(output, values)

	fftFr(output, d.domain.GeneratorInv)

	// unscale by the coset generator and the domain size
	cosetScale := d.domain.CardinalityInv
	for i := 0; i < len(output); i++ {
		output[i].Mul(&output[i], &cosetScale)
		cosetScale.Mul(&cosetScale, &d.coset.InvCosetGen)
	}
}
