package response

import (
	"github.com/gin-gonic/gin"
)

// PaginationMeta mengikuti bentuk paginasi yang dikonsumsi frontend:
// current_page, last_page, per_page, total, from, to.
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	From        int   `json:"from"`
	To          int   `json:"to"`
}

// NewPaginationMeta menghitung metadata halaman. count adalah jumlah item
// yang benar-benar dikirim pada halaman ini; from/to keduanya 0 jika
// halamannya kosong.
func NewPaginationMeta(total int64, page, limit, count int) PaginationMeta {
	lastPage := 1
	if limit > 0 {
		// pembulatan ke atas: (total + limit - 1) / limit
		lastPage = int((total + int64(limit) - 1) / int64(limit))
	}
	if lastPage < 1 {
		lastPage = 1
	}

	from, to := 0, 0
	if count > 0 {
		from = (page-1)*limit + 1
		to = from + count - 1
	}

	return PaginationMeta{
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     limit,
		Total:       total,
		From:        from,
		To:          to,
	}
}

// Envelope adalah bentuk respons seragam API:
// {status, message, data, pagination} dengan status "success" atau "error".
type Envelope struct {
	Status     string          `json:"status"`
	Message    string          `json:"message"`
	Data       any             `json:"data,omitempty"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
	Code       string          `json:"code,omitempty"`
	Errors     any             `json:"errors,omitempty"`
}

func Success(c *gin.Context, status int, message string, data any, meta *PaginationMeta) {
	c.JSON(status, Envelope{
		Status:     "success",
		Message:    message,
		Data:       data,
		Pagination: meta,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	c.JSON(status, Envelope{
		Status:  "error",
		Message: message,
		Code:    errorCode,
		Errors:  details,
	})
}
