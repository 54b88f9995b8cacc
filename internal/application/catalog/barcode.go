package catalog

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// RandomEAN13 genera un EAN-13 con 12 dígitos aleatorios y su dígito verificador.
func RandomEAN13() string {
	digits := make([]byte, 0, 13)
	ten := big.NewInt(10)
	for i := 0; i < 12; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			panic("catalog: rand: " + err.Error())
		}
		digits = append(digits, byte('0'+n.Int64()))
	}
	return string(digits) + strconv.Itoa(EAN13CheckDigit(string(digits)))
}

// EAN13CheckDigit calcula el verificador sobre los primeros 12 dígitos (pesos 1 y 3 alternados).
func EAN13CheckDigit(first12 string) int {
	sum := 0
	for i := 0; i < 12 && i < len(first12); i++ {
		d := int(first12[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10
}
