package validate_test

import (
	"errors"
	"testing"

	"github.com/adamwoolhether/rester/internal/validate"
	"github.com/google/go-cmp/cmp"
)

type account struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Age   int    `mapstructure:"age" validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	testCases := map[string]struct {
		val       any
		expFields validate.FieldErrors
	}{
		"valid": {
			val: &account{Name: "ada", Email: "ada@example.com"},
		},
		"validValue": {
			val: account{Name: "ada"},
		},
		"missingName": {
			val:       &account{},
			expFields: validate.FieldErrors{{Field: "name", Err: "This field is required"}},
		},
		"badEmailAndAge": {
			val: &account{Name: "ada", Email: "nope", Age: -1},
			expFields: validate.FieldErrors{
				{Field: "email", Err: "email must be a valid email address"},
				{Field: "age", Err: "age must be 0 or greater"},
			},
		},
		"mapIgnored": {
			val: &map[string]any{"name": ""},
		},
		"nilPointerIgnored": {
			val: (*account)(nil),
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			err := validate.Struct(tc.val)
			if tc.expFields == nil {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}

			var fields validate.FieldErrors
			if !errors.As(err, &fields) {
				t.Fatalf("expected FieldErrors, got %T: %v", err, err)
			}

			if diff := cmp.Diff(tc.expFields, fields); diff != "" {
				t.Errorf("unexpected field errors (-want +got):\n%s", diff)
			}
		})
	}
}
