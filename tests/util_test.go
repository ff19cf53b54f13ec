package testutil

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/recordsync/core"
	"github.com/trezcool/recordsync/core/settings"
)

func TestNewStack_TranslatorMatchesValidator(t *testing.T) {
	stack := NewStack(t)

	err := stack.Validate.Struct(settings.Settings{ClassStartTime: "25:00"})
	var vErrs validator.ValidationErrors
	require.ErrorAs(t, err, &vErrs)
	assert.Equal(t,
		map[string]string{"class_start_time": "must be a time like 08:00 AM"},
		core.TranslateErrors(vErrs, stack.Translator),
	)
}
