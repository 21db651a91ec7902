package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"stayos/internal/domain"
	"stayos/internal/handler"
	"stayos/internal/service"
	"stayos/mocks"
)

func studioRouter(a authed, h *handler.StudioHandler) *gin.Engine {
	r := a.engine()
	r.GET("/studios", h.List)
	r.POST("/studios", h.Create)
	r.PUT("/studios/:id", h.Update)
	r.DELETE("/studios/:id", h.Delete)
	r.POST("/studios/:id/release", h.Release)
	return r
}

func TestStudioHandler_List_VacantOnly(t *testing.T) {
	a := newAuthed(domain.RoleStaff)
	svc := new(mocks.MockStudioService)
	svc.On("List", mock.Anything, a.tenantID, true, 0, 20).Return([]domain.Studio{{Name: "S-101"}}, 1, nil)
	svc.On("List", mock.Anything, a.tenantID, false, 0, 20).Return([]domain.Studio{}, 0, nil)

	r := studioRouter(a, handler.NewStudioHandler(svc))
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/studios?vacant=true", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/studios", nil).Code)
	svc.AssertExpectations(t)
}

func TestStudioHandler_Create_Validation(t *testing.T) {
	a := newAuthed(domain.RoleManager)
	svc := new(mocks.MockStudioService)
	svc.On("Create", mock.Anything, a.tenantID, mock.MatchedBy(func(in service.CreateStudioInput) bool {
		return in.Name == "S-101"
	})).Return(&domain.Studio{ID: uuid.New(), Name: "S-101"}, nil)

	r := studioRouter(a, handler.NewStudioHandler(svc))
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/studios", jsonBody(t, map[string]string{"floor": "1"})).Code)
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/studios", jsonBody(t, map[string]string{"name": "S-101"})).Code)
	svc.AssertExpectations(t)
}

func TestStudioHandler_Delete_Occupied(t *testing.T) {
	a := newAuthed(domain.RoleAdmin)
	svc := new(mocks.MockStudioService)
	id := uuid.New()
	svc.On("Delete", mock.Anything, a.tenantID, id).Return(domain.ErrStudioOccupied)

	w := do(studioRouter(a, handler.NewStudioHandler(svc)), http.MethodDelete, "/studios/"+id.String(), nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "STUDIO_OCCUPIED", decode(t, w).Error.Code)
}

func TestStudioHandler_Release(t *testing.T) {
	a := newAuthed(domain.RoleManager)
	svc := new(mocks.MockStudioService)
	id := uuid.New()
	svc.On("Release", mock.Anything, a.tenantID, id).Return(&domain.Studio{ID: id, Occupied: false}, nil)

	w := do(studioRouter(a, handler.NewStudioHandler(svc)), http.MethodPost, "/studios/"+id.String()+"/release", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"occupied":false`)
	svc.AssertExpectations(t)
}
