package formaterror

import "strings"

// FormatError maps raw database constraint errors onto user-facing field
// messages. Anything unrecognized is reported as a generic failure.
func FormatError(err string) map[string]string {
	errorMessages := make(map[string]string)

	if strings.Contains(err, "username") {
		errorMessages["Taken_username"] = "Username Already Taken"
	}
	if strings.Contains(err, "email") {
		errorMessages["Taken_email"] = "Email Already Taken"
	}
	if strings.Contains(err, "slug") {
		errorMessages["Taken_slug"] = "Slug Already Taken"
	}
	if strings.Contains(err, "idx_follows_user_author") {
		errorMessages["Already_following"] = "Already Following"
	}
	if strings.Contains(err, "hashedPassword") || strings.Contains(err, "hashed") {
		errorMessages["Incorrect_password"] = "Incorrect Password"
	}
	if len(errorMessages) > 0 {
		return errorMessages
	}
	return map[string]string{"Incorrect_details": "Incorrect Details"}
}
