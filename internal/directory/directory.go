// Package directory adalah lapisan data sisi klien untuk koleksi karyawan
// dan divisi: list berfilter + berpaginasi, mutasi create/update/delete
// dengan kontrak sukses/gagal yang seragam, dan notifikasi perubahan lewat
// bus. Ada dua implementasi yang saling menggantikan: APIClient (backend
// REST remote) dan Snapshot (data lokal untuk mode offline/demo).
package directory

import (
	"context"
	"strings"

	"go-employee/internal/shared/apperror"
)

type Division struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Employee struct {
	ID       string   `json:"id"`
	Image    string   `json:"image"`
	Name     string   `json:"name"`
	Phone    string   `json:"phone"`
	Division Division `json:"division"`
	Position string   `json:"position"`
}

// Filter: Name = substring case-insensitive, DivisionID = exact match;
// keduanya AND.
type Filter struct {
	Name       string
	DivisionID string
}

type PageRequest struct {
	Page  int
	Limit int
}

func (p PageRequest) normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	return p
}

// PageResult adalah satu halaman hasil beserta metadata paginasi lengkap.
// From/To adalah batas 1-based item halaman ini dalam keseluruhan hasil
// terfilter; keduanya 0 jika halaman kosong.
type PageResult struct {
	Items       []Employee
	CurrentPage int
	PerPage     int
	Total       int64
	LastPage    int
	From        int
	To          int
}

type EmployeeInput struct {
	Name     string
	Phone    string
	Division string // id divisi, harus menunjuk divisi yang ada
	Position string
	Image    string
}

// EmployeeUpdate bersifat parsial: field nil dibiarkan tidak berubah.
type EmployeeUpdate struct {
	Name     *string
	Phone    *string
	Division *string
	Position *string
	Image    *string
}

// Directory adalah kontrak bersama kedua backend. Semua operasi blocking
// mengambil context; kegagalan selalu berupa *apperror.AppError dengan kode
// INVALID_INPUT, NOT_FOUND, UNAUTHORIZED, atau INTERNAL_ERROR sehingga
// pemanggil cukup satu branch.
type Directory interface {
	ListEmployees(ctx context.Context, filter Filter, page PageRequest) (PageResult, error)
	ListDivisions(ctx context.Context, name string) ([]Division, error)
	CreateEmployee(ctx context.Context, input EmployeeInput) (string, error)
	UpdateEmployee(ctx context.Context, id string, update EmployeeUpdate) error
	DeleteEmployee(ctx context.Context, id string) error
}

// CredentialProvider menyuplai bearer token; dependensi eksplisit, bukan
// dibaca dari storage ambient di dalam klien.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticCredential adalah CredentialProvider paling sederhana: token tetap.
type StaticCredential string

func (s StaticCredential) Token(context.Context) (string, error) {
	return string(s), nil
}

// lastPageFor menghitung last_page = max(1, ceil(total/perPage)).
func lastPageFor(total int64, perPage int) int {
	if perPage < 1 {
		return 1
	}
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return lastPage
}

// boundsFor menghitung from/to untuk halaman dengan count item.
func boundsFor(page, perPage, count int) (from, to int) {
	if count <= 0 {
		return 0, 0
	}
	from = (page-1)*perPage + 1
	return from, from + count - 1
}

// validateInput memeriksa field wajib non-kosong setelah trimming; murah,
// menghindari satu round-trip, dan tidak lebih ketat dari aturan backend.
func validateInput(input *EmployeeInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Division = strings.TrimSpace(input.Division)
	input.Position = strings.TrimSpace(input.Position)

	switch "" {
	case input.Name:
		return apperror.RequiredField("Name")
	case input.Phone:
		return apperror.RequiredField("Phone")
	case input.Division:
		return apperror.RequiredField("Division")
	case input.Position:
		return apperror.RequiredField("Position")
	}
	return nil
}

func matchesFilter(e Employee, filter Filter) bool {
	if filter.Name != "" &&
		!strings.Contains(strings.ToLower(e.Name), strings.ToLower(filter.Name)) {
		return false
	}
	if filter.DivisionID != "" && e.Division.ID != filter.DivisionID {
		return false
	}
	return true
}
