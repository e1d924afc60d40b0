package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type kinded struct{}

func (kinded) Error() string { return "kinded" }
func (kinded) Kind() Kind    { return KindProvider }

func TestStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("text is required"), http.StatusBadRequest},
		{"not found", NotFound("summary %s not found", "x"), http.StatusNotFound},
		{"configuration", Configuration("GROQ_API_KEY is not set"), http.StatusInternalServerError},
		{"delivery", Delivery(errors.New("dial tcp: refused")), http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("set prompt: %w", NotFound("transcript not found")), http.StatusNotFound},
		{"kind method", fmt.Errorf("generate: %w", kinded{}), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Status(tc.err))
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindProvider, KindOf(fmt.Errorf("wrap: %w", kinded{})))
	assert.Equal(t, KindInternal, KindOf(errors.New("x")))
	assert.True(t, Is(Storage(errors.New("locked")), KindStorage))
	assert.False(t, Is(nil, KindInternal))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "transcriptId is required", Validation("transcriptId is required").Error())
	assert.Equal(t, "not_found error", New(KindNotFound, nil).Error())

	inner := errors.New("inner")
	assert.ErrorIs(t, Storage(inner), inner)
}
