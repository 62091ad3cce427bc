package cobrax

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiredValidator(t *testing.T) {
	v := &RequiredValidator{}
	assert.Error(t, v.Validate(nil))
	assert.Error(t, v.Validate("  "))
	assert.Error(t, v.Validate([]string{}))
	assert.NoError(t, v.Validate("words.txt"))
	assert.NoError(t, v.Validate(0))

	v = &RequiredValidator{Message: "需要词表文件"}
	assert.EqualError(t, v.Validate(""), "需要词表文件")
}

func TestMinValueValidator(t *testing.T) {
	assert.NoError(t, (&MinValueValidator{Min: 1}).Validate(1))
	assert.Error(t, (&MinValueValidator{Min: 1}).Validate(0))
	assert.NoError(t, (&MinValueValidator{Min: 0.0}).Validate(0.5))
	assert.Error(t, (&MinValueValidator{Min: 0.0}).Validate(-0.5))
	assert.Error(t, (&MinValueValidator{Min: 1}).Validate(0.5), "类型不匹配")
	assert.Error(t, (&MinValueValidator{Min: 1}).Validate("1"))
}

func TestOpenRangeValidator(t *testing.T) {
	v := &OpenRangeValidator{Min: 0, Max: 1}
	tests := []struct {
		value any
		ok    bool
	}{
		{0.5, true},
		{0.0, false},
		{1.0, false},
		{math.NaN(), false},
		{"0.03", true},
		{"1.5", false},
		{"abc", false},
		{[]string{"0.01", " 0.1 "}, true},
		{[]string{"0.01", "0"}, false},
		{[]string{}, true},
		{[]string{"0.01,0.1"}, true},
		{[]string{"0.01,1.5"}, false},
		{3, false},
	}
	for _, tc := range tests {
		err := v.Validate(tc.value)
		if tc.ok {
			assert.NoError(t, err, "%v", tc.value)
		} else {
			assert.Error(t, err, "%v", tc.value)
		}
	}
}
