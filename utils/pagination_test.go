package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationFor(query string) *Pagination {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/trips?"+query, nil)
	return NewPagination(c)
}

func TestNewPagination(t *testing.T) {
	p := paginationFor("")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPaginationLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = paginationFor("page=3&limit=10")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 20, p.Offset)

	p = paginationFor("page=-2&limit=abc")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPaginationLimit, p.Limit)

	p = paginationFor("limit=1000")
	assert.Equal(t, MaxPaginationLimit, p.Limit)
}

func TestPaginationSetTotal(t *testing.T) {
	p := paginationFor("limit=10")
	p.SetTotal(25)
	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, 3, p.LastPage)

	p.SetTotal(0)
	assert.Equal(t, 0, p.LastPage)
}
