// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("cliente@empresa.com.br"))
	assert.True(t, ValidEmail("  spaced@mail.com  "))
	assert.False(t, ValidEmail(""))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("missing@tld"))
	assert.False(t, ValidEmail("two@@signs.com"))
}

func TestCouponCodeValidator(t *testing.T) {
	type form struct {
		Coupon string `validate:"coupon_code"`
	}

	assert.NoError(t, ValidateStruct(&form{Coupon: "ABCD1234EFGH5678"}))
	assert.NoError(t, ValidateStruct(&form{Coupon: ""}))
	assert.Error(t, ValidateStruct(&form{Coupon: "short"}))
	assert.Error(t, ValidateStruct(&form{Coupon: "ABCD1234EFGH56789"}))
	assert.Error(t, ValidateStruct(&form{Coupon: "ABCD-1234-EFGH-5"}))
}

func TestCNPJValidator(t *testing.T) {
	type form struct {
		Document string `validate:"cnpj"`
	}

	assert.NoError(t, ValidateStruct(&form{Document: "12345678000199"}))
	assert.NoError(t, ValidateStruct(&form{Document: "12.345.678/0001-99"}))
	assert.NoError(t, ValidateStruct(&form{Document: ""}))
	assert.Error(t, ValidateStruct(&form{Document: "1234"}))
}

func TestStrongPasswordValidator(t *testing.T) {
	type form struct {
		Password string `validate:"strong_password"`
	}

	assert.NoError(t, ValidateStruct(&form{Password: "Portal123"}))
	assert.Error(t, ValidateStruct(&form{Password: "short1A"}))
	assert.Error(t, ValidateStruct(&form{Password: "alllowercase1"}))
	assert.Error(t, ValidateStruct(&form{Password: "NoNumbersHere"}))
}

func TestGetValidationErrors(t *testing.T) {
	type form struct {
		Email string `validate:"required,email"`
	}

	errs := GetValidationErrors(ValidateStruct(&form{}))
	assert.Len(t, errs, 1)
	assert.Equal(t, "email", errs[0].Field)
	assert.Equal(t, "required", errs[0].Tag)
}
