package serverutils

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Title   string `validate:"required,max=10"`
	Content string `validate:"required"`
}

func TestValidateRequestOk(t *testing.T) {
	err := ValidateRequest(sampleRequest{Title: "limits", Content: "body"})
	assert.NoError(t, err)
}

func TestValidateRequestMissingField(t *testing.T) {
	err := ValidateRequest(sampleRequest{Title: "limits"})
	assert.Error(t, err)

	fiberErr, ok := err.(*fiber.Error)
	assert.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
	assert.Contains(t, fiberErr.Message, "Content")
}

func TestValidateRequestTooLong(t *testing.T) {
	err := ValidateRequest(sampleRequest{Title: "a very long title", Content: "body"})
	assert.Error(t, err)
}
