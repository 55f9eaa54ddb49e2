package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse define a estrutura padrão das respostas de erro.
type ErrorResponse struct {
	Message string `json:"message"`
}

// SendSuccess envia uma resposta de sucesso com um payload de dados.
func SendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"data": data,
	})
}

// SendError envia uma resposta de erro com formato padronizado.
func SendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"error": ErrorResponse{
			Message: message,
		},
	})
}

// --- Helpers para os erros mais comuns ---

func SendBadRequest(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message)
}

func SendNotFound(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, message)
}

func SendInternalServerError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, message)
}
