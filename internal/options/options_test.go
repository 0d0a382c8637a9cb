package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	o := Default()
	assert.Equal(t, 4, o.TabWidth)
	assert.True(t, o.Grid)
	assert.Equal(t, 80, o.TermWidth)
	assert.Equal(t, WrapChar, o.TextWrap)
	assert.Equal(t, 3, o.MinContext)
	assert.Equal(t, 6, o.MaxContext)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{"defaults are valid", func(o *Options) {}, false},
		{"term width too small", func(o *Options) { o.TermWidth = 9 }, true},
		{"term width exactly 10 is valid", func(o *Options) { o.TermWidth = 10 }, false},
		{"negative min context", func(o *Options) { o.MinContext = -1 }, true},
		{"max context below min context", func(o *Options) { o.MinContext = 5; o.MaxContext = 4 }, true},
		{"max context equal to min context", func(o *Options) { o.MinContext = 5; o.MaxContext = 5 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := Default()
			tc.mutate(&o)
			err := o.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOption)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
