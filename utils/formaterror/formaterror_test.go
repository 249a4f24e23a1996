package formaterror

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatError(t *testing.T) {
	errs := FormatError("UNIQUE constraint failed: users.username")
	assert.Equal(t, "Username Already Taken", errs["Taken_username"])

	errs = FormatError("UNIQUE constraint failed: users.email")
	assert.Equal(t, "Email Already Taken", errs["Taken_email"])

	errs = FormatError("UNIQUE constraint failed: groups.slug")
	assert.Equal(t, "Slug Already Taken", errs["Taken_slug"])

	errs = FormatError("hashedPassword mismatch")
	assert.Equal(t, "Incorrect Password", errs["Incorrect_password"])

	errs = FormatError("something else entirely")
	assert.Equal(t, "Incorrect Details", errs["Incorrect_details"])
}
