package controllers

import (
	"errors"
	"net/http"

	"Yatube/auth"
	"Yatube/mailer"
	"Yatube/models"
	"Yatube/security"
	"Yatube/utils/formaterror"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginForm is the target of auth-required redirects. It echoes the `next`
// parameter so the client can send the user back after a successful login.
func (server *Server) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"form": gin.H{"email": "", "password": ""},
			"next": c.Query("next"),
		},
	})
}

// Login verifies credentials and issues a session token, both in the
// response body and as a cookie for browser flows.
func (server *Server) Login(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	user.Prepare()
	errorMessages := user.Validate("login")
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"errors": errorMessages,
		})
		return
	}

	userData, err := server.SignIn(user.Email, user.Password)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"errors": formattedError,
		})
		return
	}

	if token, ok := userData["token"].(string); ok {
		c.SetCookie("token", token, 60*60*24, "/", "", false, true)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userData,
	})
}

func (server *Server) SignIn(email, password string) (map[string]interface{}, error) {
	userData := make(map[string]interface{})

	user := models.User{}
	err := server.DB.Model(models.User{}).Where("email = ?", email).Take(&user).Error
	if err != nil {
		return nil, err
	}
	err = security.VerifyPassword(user.Password, password)
	if err != nil && errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return nil, errors.New("hashedPassword mismatch")
	}
	token, err := auth.CreateToken(user.ID)
	if err != nil {
		return nil, err
	}

	userData["token"] = token
	userData["id"] = user.ID
	userData["email"] = user.Email
	userData["username"] = user.Username
	userData["is_admin"] = user.IsAdmin

	return userData, nil
}

// ForgotPassword mails a single-use reset token to the account's address.
func (server *Server) ForgotPassword(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	user.Prepare()
	errorMessages := user.Validate("forgotpassword")
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"errors": errorMessages,
		})
		return
	}

	var existing models.User
	err := server.DB.Where("email = ?", user.Email).Take(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"status": http.StatusUnprocessableEntity,
				"errors": map[string]string{"No_email": "Sorry, we do not recognize this email"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load user"})
		return
	}

	details := models.ResetPassword{Email: existing.Email}
	details.Prepare()
	if _, err := details.SaveDetails(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to create reset token"})
		return
	}

	if err := mailer.SendResetPassword(details.Email, details.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to send reset email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Success, Please click on the link provided in your email",
	})
}

// ResetPassword consumes a reset token and sets the new password.
func (server *Server) ResetPassword(c *gin.Context) {
	var payload struct {
		Token          string `json:"token"`
		NewPassword    string `json:"new_password"`
		RetypePassword string `json:"retype_password"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	if payload.NewPassword == "" || payload.RetypePassword == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"errors": map[string]string{"Empty_passwords": "Please ensure both fields are entered"},
		})
		return
	}
	if len(payload.NewPassword) < 6 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"errors": map[string]string{"Invalid_password": "Password should be at least 6 characters"},
		})
		return
	}
	if payload.NewPassword != payload.RetypePassword {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"errors": map[string]string{"Password_unequal": "Passwords provided do not match"},
		})
		return
	}

	details := models.ResetPassword{}
	detailsFound, err := details.FindEmailByToken(server.DB, payload.Token)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"errors": map[string]string{"Invalid_token": "Invalid link. Try requesting again"},
		})
		return
	}

	user := models.User{Email: detailsFound.Email, Password: payload.NewPassword}
	if err := user.UpdatePassword(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to update password"})
		return
	}

	if _, err := detailsFound.DeleteDetails(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to consume reset token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Success, Please login with your new password",
	})
}
