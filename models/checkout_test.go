package models_test

import (
	"testing"

	"storefront-service/models"

	"github.com/stretchr/testify/assert"
)

func TestCheckoutStateTerminality(t *testing.T) {
	assert.False(t, models.CheckoutCollecting.IsTerminal())
	assert.False(t, models.CheckoutSubmitting.IsTerminal())
	assert.True(t, models.CheckoutOrderCreated.IsTerminal())
	assert.True(t, models.CheckoutFailed.IsTerminal())
}

func TestCheckoutStateString(t *testing.T) {
	assert.Equal(t, "submitting", models.CheckoutSubmitting.String())
	assert.Equal(t, "order_created", models.CheckoutOrderCreated.String())
}
