package core

import (
	"math/rand/v2"
	"strings"
)

// ReceiverDomains defines the domains used when synthesizing receiver addresses.
var ReceiverDomains = []string{
	"gmail.com",
	"yahoo.com",
	"outlook.com",
	"hotmail.com",
	"example.com",
	"loanservice.com",
	"mortgagehelp.net",
	"financialaid.org",
}

const addressAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateReceiverAddress synthesizes a random receiver email address for a
// processed email. The username is 5-10 lowercase alphanumeric characters,
// with a ~30% chance of an appended "_" or "." separator plus a 3-7 character
// suffix, at a domain picked from ReceiverDomains.
func GenerateReceiverAddress() string {
	var b strings.Builder
	writeRandom(&b, 5+rand.IntN(6))

	if rand.Float64() > 0.7 {
		if rand.IntN(2) == 0 {
			b.WriteByte('_')
		} else {
			b.WriteByte('.')
		}
		writeRandom(&b, 3+rand.IntN(5))
	}

	b.WriteByte('@')
	b.WriteString(ReceiverDomains[rand.IntN(len(ReceiverDomains))])
	return b.String()
}

func writeRandom(b *strings.Builder, n int) {
	for range n {
		b.WriteByte(addressAlphabet[rand.IntN(len(addressAlphabet))])
	}
}
