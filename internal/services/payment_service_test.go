// internal/services/payment_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInCents(t *testing.T) {
	assert.Equal(t, int64(29), amountInCents(0.29))
	assert.Equal(t, int64(12150), amountInCents(121.50))
	assert.Equal(t, int64(1999), amountInCents(19.99))
	assert.Equal(t, int64(0), amountInCents(0))
}
