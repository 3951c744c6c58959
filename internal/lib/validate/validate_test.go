package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-manager/internal/lib/apperror"
	"github.com/magabrotheeeer/subscription-manager/internal/lib/validate"
)

type createRequest struct {
	Name  string `json:"name" validate:"required,min=3,max=50"`
	Email string `json:"email" validate:"required,min=10,max=50,email"`
	Price int    `json:"price" validate:"gte=0"`
}

func TestViolations_CollectsAllFields(t *testing.T) {
	v := validate.New()

	err := v.Struct(createRequest{
		Name:  "An", // короче минимума
		Email: "",
		Price: 10,
	})
	require.Error(t, err)

	appErr := validate.Violations("User", err)
	require.Equal(t, apperror.KindValidation, appErr.Kind)
	require.Len(t, appErr.Fields, 2)

	assert.Equal(t, "name", appErr.Fields[0].Field)
	assert.Equal(t, "field name must be at least 3 characters long", appErr.Fields[0].Message)
	assert.Equal(t, "email", appErr.Fields[1].Field)
	assert.Equal(t, "field email is a required field", appErr.Fields[1].Message)
}

func TestViolations_NumericBounds(t *testing.T) {
	v := validate.New()

	err := v.Struct(createRequest{
		Name:  "Ann Lee",
		Email: "ann@example.com",
		Price: -5,
	})
	require.Error(t, err)

	appErr := validate.Violations("Subscription Plan", err)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "price", appErr.Fields[0].Field)
	assert.Equal(t, "field price must be 0 or greater", appErr.Fields[0].Message)
}

func TestViolations_ValidPayload(t *testing.T) {
	v := validate.New()

	err := v.Struct(createRequest{
		Name:  "Ann Lee",
		Email: "ann@example.com",
		Price: 0,
	})
	assert.NoError(t, err)
}
