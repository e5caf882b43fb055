// Package primality holds the workload executed by every benchmark run: a
// deliberately naive trial-division primality test and a range scanner built on it.
//
// The algorithm is fixed. Timings are only comparable across runs and across
// machines if every run performs exactly the same O(√n) work per candidate, so
// do not add wheel factorisation, even skipping or a sieve here.
package primality

import "math"

// IsPrime reports whether n is prime by trial division over every integer in
// [2, floor(sqrt(n))]. It is pure and safe for concurrent use.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n == 2 {
		return true
	}

	boundary := int(math.Floor(math.Sqrt(float64(n))))
	for i := 2; i <= boundary; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// Scan returns every prime in the half-open interval [first, last) in
// ascending order. An empty interval yields a nil slice.
func Scan(first, last int) []int {
	var primes []int
	for n := first; n < last; n++ {
		if IsPrime(n) {
			primes = append(primes, n)
		}
	}
	return primes
}
