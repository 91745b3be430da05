package aws

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{&smithy.GenericAPIError{Code: "NotFound"}, true},
		{&smithy.GenericAPIError{Code: "NoSuchKey"}, true},
		{fmt.Errorf("wrapped, %w", &smithy.GenericAPIError{Code: "NoSuchBucket"}), true},
		{&smithy.GenericAPIError{Code: "AccessDenied"}, false},
		{errors.New("boom"), false},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, IsNotFound(c.err), c.err.Error())
	}
}
