package types

import "github.com/gin-gonic/gin"

const ContextUserKey = "user"

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type MetadataPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type ObjectResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Content   *string `json:"content"`
	ProjectID *uint   `json:"project_id"`
}

// ObjectDetail carries the metadata list twice: metadata_entries is the
// current field, metadata is kept for older callers. Both are identical.
type ObjectDetail struct {
	ObjectResponse
	MetadataEntries []MetadataPair `json:"metadata_entries"`
	Metadata        []MetadataPair `json:"metadata"`
}

// ObjectPage is the envelope shape for GET /objects when the caller
// supplied any paging or filter parameter.
type ObjectPage struct {
	Items  []ObjectResponse `json:"items"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// Error codes surfaced in the {"error": {code, message}} body.
const (
	CodeInvalidRequest     = "invalid_request"
	CodeNotFound           = "not_found"
	CodeUsernameExists     = "username_exists"
	CodeEmailExists        = "email_exists"
	CodeInvalidCredentials = "invalid_credentials"
	CodeInvalidToken       = "invalid_token"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeProjectExists      = "project_exists"
	CodeInvalidProject     = "invalid_project"
	CodeInvalidObject      = "invalid_object"
	CodeInternal           = "internal_error"
)

// Error writes the structured error body shared by every endpoint.
func Error(ctx *gin.Context, status int, code, message string) {
	ctx.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
