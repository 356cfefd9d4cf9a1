package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"clubportal/internal/authz"
	"clubportal/internal/models"
)

type stubSessionService struct {
	identity *models.Identity
	err      error
}

func (s *stubSessionService) Issue(memberID int) (string, error) { return "stub-token", nil }

func (s *stubSessionService) Resolve(r *http.Request) (*models.Identity, error) {
	return s.identity, s.err
}

func newTestRouter(sessions *stubSessionService, guards ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionMiddleware(sessions))
	chain := append(guards, func(c *gin.Context) {
		identity := IdentityFromCtx(c)
		if identity == nil {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"member_id": identity.MemberID})
	})
	r.GET("/probe", chain...)
	return r
}

func doProbe(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))
	return w
}

func TestSessionMiddlewareAnonymousPasses(t *testing.T) {
	w := doProbe(newTestRouter(&stubSessionService{}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")
}

func TestSessionMiddlewareSetsIdentity(t *testing.T) {
	sessions := &stubSessionService{identity: &models.Identity{MemberID: 5, RoleID: authz.RoleMember, Status: models.MemberStatusActive}}
	w := doProbe(newTestRouter(sessions))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"member_id":5`)
}

func TestSessionMiddlewareStoreErrorAborts(t *testing.T) {
	w := doProbe(newTestRouter(&stubSessionService{err: errors.New("store down")}))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireMember(t *testing.T) {
	// аноним
	w := doProbe(newTestRouter(&stubSessionService{}, RequireMember()))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// отключённый аккаунт
	disabled := &stubSessionService{identity: &models.Identity{MemberID: 5, RoleID: authz.RoleMember, Status: models.MemberStatusDisabled}}
	w = doProbe(newTestRouter(disabled, RequireMember()))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// активный участник
	active := &stubSessionService{identity: &models.Identity{MemberID: 5, RoleID: authz.RoleMember, Status: models.MemberStatusActive}}
	w = doProbe(newTestRouter(active, RequireMember()))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoles(t *testing.T) {
	member := &stubSessionService{identity: &models.Identity{MemberID: 5, RoleID: authz.RoleMember, Status: models.MemberStatusActive}}
	admin := &stubSessionService{identity: &models.Identity{MemberID: 6, RoleID: authz.RoleAdmin, Status: models.MemberStatusActive}}

	w := doProbe(newTestRouter(member, RequireRoles(authz.RoleAdmin)))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doProbe(newTestRouter(admin, RequireRoles(authz.RoleAdmin)))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doProbe(newTestRouter(&stubSessionService{}, RequireRoles(authz.RoleAdmin)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
