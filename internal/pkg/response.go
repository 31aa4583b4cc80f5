package pkg

import "github.com/gin-gonic/gin"

// Error codes carried in the failure envelope.
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeNotSignedIn        = "NOT_SIGNEDIN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeNotAllowed         = "NOT_ALLOWED_ACCESS"
	CodeNotFound           = "RESOURCE_NOT_FOUND"
	CodeExists             = "RESOURCE_EXISTS"
	CodeAlreadyMember      = "ALREADY_MEMBER"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
)

type FieldError struct {
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// OK writes the success envelope {status:true, content:{data, meta?}}.
// meta may be nil.
func OK(c *gin.Context, status int, data, meta any) {
	content := gin.H{"data": data}
	if meta != nil {
		content["meta"] = meta
	}
	c.JSON(status, gin.H{"status": true, "content": content})
}

// OKStatus writes a bare {status:true}, used by delete endpoints.
func OKStatus(c *gin.Context, status int) {
	c.JSON(status, gin.H{"status": true})
}

// Fail writes the failure envelope {status:false, errors:[...]}. Every error
// path uses this one shape.
func Fail(c *gin.Context, status int, errs ...FieldError) {
	c.JSON(status, gin.H{"status": false, "errors": errs})
}

// FailAbort is Fail plus request abort, for middleware.
func FailAbort(c *gin.Context, status int, errs ...FieldError) {
	c.AbortWithStatusJSON(status, gin.H{"status": false, "errors": errs})
}
