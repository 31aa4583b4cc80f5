package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"communityhub/internal/config"
	"communityhub/internal/handler"
	"communityhub/internal/pkg"
	"communityhub/internal/repository/memory"
	"communityhub/internal/router"
	"communityhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// apiEnv is a full HTTP stack on the in-memory repositories.
type apiEnv struct {
	engine  *gin.Engine
	roleSvc *service.RoleService
}

func newAPI(t *testing.T) *apiEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := memory.NewUserRepository()
	roles := memory.NewRoleRepository()
	communities := memory.NewCommunityRepository()
	members := memory.NewMemberRepository()

	logger := zap.NewNop()
	maker := pkg.NewTokenMaker("test-secret", time.Hour)

	rbac := service.NewRBACService(roles, members)
	userSvc := service.NewUserService(users, maker, nil, logger)
	roleSvc := service.NewRoleService(roles)
	memberSvc := service.NewMemberService(members, communities, users, roles, rbac, nil, logger)
	communitySvc := service.NewCommunityService(communities, members, users, roles, memberSvc, nil, logger)

	require.NoError(t, roleSvc.EnsureSeedRoles(context.Background()))

	engine := router.New(&config.Config{}, logger, maker, router.Handlers{
		User:      handler.NewUserHandler(userSvc),
		Community: handler.NewCommunityHandler(communitySvc),
		Member:    handler.NewMemberHandler(memberSvc),
		Role:      handler.NewRoleHandler(roleSvc),
	})
	return &apiEnv{engine: engine, roleSvc: roleSvc}
}

type envelope struct {
	Status  bool `json:"status"`
	Content struct {
		Data json.RawMessage `json:"data"`
		Meta json.RawMessage `json:"meta"`
	} `json:"content"`
	Errors []pkg.FieldError `json:"errors"`
}

func (e *apiEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, env
}

// signup registers a user and returns its id and access token.
func (e *apiEnv) signup(t *testing.T, name, email string) (id, token string) {
	t.Helper()

	w, env := e.do(t, http.MethodPost, "/v1/auth/signup", "", gin.H{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Content.Data, &data))
	var meta struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Content.Meta, &meta))
	require.NotEmpty(t, meta.AccessToken)
	return data.ID, meta.AccessToken
}

func (e *apiEnv) roleID(t *testing.T, name string) string {
	t.Helper()
	role, err := e.roleSvc.Create(context.Background(), name)
	require.NoError(t, err)
	return role.ID
}

func TestSignupSigninMe(t *testing.T) {
	api := newAPI(t)

	_, token := api.signup(t, "Alice", "alice@x.com")

	// duplicate email
	w, env := api.do(t, http.MethodPost, "/v1/auth/signup", "", gin.H{
		"name": "Alice Again", "email": "alice@x.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "email", env.Errors[0].Param)
	assert.Equal(t, pkg.CodeExists, env.Errors[0].Code)

	// invalid payload
	w, env = api.do(t, http.MethodPost, "/v1/auth/signup", "", gin.H{
		"name": "A", "email": "not-an-email", "password": "x",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, env.Errors, 3)
	for _, fe := range env.Errors {
		assert.Equal(t, pkg.CodeInvalidInput, fe.Code)
	}

	// signin
	w, env = api.do(t, http.MethodPost, "/v1/auth/signin", "", gin.H{
		"email": "alice@x.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Status)

	w, env = api.do(t, http.MethodPost, "/v1/auth/signin", "", gin.H{
		"email": "alice@x.com", "password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, pkg.CodeInvalidCredentials, env.Errors[0].Code)

	// me
	w, env = api.do(t, http.MethodGet, "/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Content.Data, &me))
	assert.Equal(t, "alice@x.com", me.Email)
}

func TestCommunityEndpointsRequireAuth(t *testing.T) {
	api := newAPI(t)

	w, env := api.do(t, http.MethodGet, "/v1/community", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, pkg.CodeNotSignedIn, env.Errors[0].Code)

	w, _ = api.do(t, http.MethodGet, "/v1/community", "garbage-token", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCommunityCreateAndListings(t *testing.T) {
	api := newAPI(t)
	_, token := api.signup(t, "Alice", "alice@x.com")

	w, env := api.do(t, http.MethodPost, "/v1/community", token, gin.H{"name": "Gopher Club"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
	}
	require.NoError(t, json.Unmarshal(env.Content.Data, &created))
	assert.Equal(t, "gopher-club", created.Slug)

	// same slug from a different name
	w, env = api.do(t, http.MethodPost, "/v1/community", token, gin.H{"name": "Gopher  Club"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "name", env.Errors[0].Param)
	assert.Equal(t, pkg.CodeExists, env.Errors[0].Code)

	// all communities, owner expanded
	w, env = api.do(t, http.MethodGet, "/v1/community", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []struct {
		ID    string `json:"id"`
		Owner struct {
			Name string `json:"name"`
		} `json:"owner"`
	}
	require.NoError(t, json.Unmarshal(env.Content.Data, &all))
	require.Len(t, all, 1)
	assert.Equal(t, "Alice", all[0].Owner.Name)

	var meta pkg.PageMeta
	require.NoError(t, json.Unmarshal(env.Content.Meta, &meta))
	assert.Equal(t, int64(1), meta.Total)
	assert.Equal(t, 1, meta.Pages)

	// owned and joined both see it
	w, env = api.do(t, http.MethodGet, "/v1/community/me/owner", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var owned []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Content.Data, &owned))
	assert.Len(t, owned, 1)

	w, env = api.do(t, http.MethodGet, "/v1/community/me/member", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var joined []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Content.Data, &joined))
	assert.Len(t, joined, 1)

	// members of the community: the owner's admin membership
	w, env = api.do(t, http.MethodGet, "/v1/community/"+created.ID+"/members", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var members []struct {
		Role struct {
			Name string `json:"name"`
		} `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Content.Data, &members))
	require.Len(t, members, 1)
	assert.Equal(t, "Community Admin", members[0].Role.Name)

	// unknown community id
	w, env = api.do(t, http.MethodGet, "/v1/community/nope/members", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, pkg.CodeNotFound, env.Errors[0].Code)
}

func TestMemberAddAndRemoveFlow(t *testing.T) {
	api := newAPI(t)
	_, adminToken := api.signup(t, "Admin", "admin@x.com")
	bobID, bobToken := api.signup(t, "Bob", "bob@x.com")
	memberRole := api.roleID(t, "Community Member")

	w, env := api.do(t, http.MethodPost, "/v1/community", adminToken, gin.H{"name": "Gopher Club"})
	require.Equal(t, http.StatusOK, w.Code)
	var community struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Content.Data, &community))

	// a non-admin cannot add members
	w, env = api.do(t, http.MethodPost, "/v1/member", bobToken, gin.H{
		"community": community.ID, "user": bobID, "role": memberRole,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, pkg.CodeNotAllowed, env.Errors[0].Code)

	// the admin can
	w, env = api.do(t, http.MethodPost, "/v1/member", adminToken, gin.H{
		"community": community.ID, "user": bobID, "role": memberRole,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var member struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Content.Data, &member))
	require.NotEmpty(t, member.ID)

	// adding the same triple again
	w, env = api.do(t, http.MethodPost, "/v1/member", adminToken, gin.H{
		"community": community.ID, "user": bobID, "role": memberRole,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, pkg.CodeAlreadyMember, env.Errors[0].Code)

	// unknown references
	w, env = api.do(t, http.MethodPost, "/v1/member", adminToken, gin.H{
		"community": community.ID, "user": "missing", "role": memberRole,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// bob, a plain member, cannot remove; response does not reveal existence
	w, env = api.do(t, http.MethodDelete, "/v1/member/"+member.ID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, pkg.CodeNotFound, env.Errors[0].Code)
	assert.Equal(t, "Member not found.", env.Errors[0].Message)

	// a missing id reads exactly the same
	w, env = api.do(t, http.MethodDelete, "/v1/member/does-not-exist", bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, pkg.CodeNotFound, env.Errors[0].Code)
	assert.Equal(t, "Member not found.", env.Errors[0].Message)

	// the community admin removes bob
	w, env = api.do(t, http.MethodDelete, "/v1/member/"+member.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Status)
}

func TestRoleEndpoints(t *testing.T) {
	api := newAPI(t)

	// role routes take no bearer token
	w, env := api.do(t, http.MethodPost, "/v1/role", "", gin.H{"name": "Editor"})
	require.Equal(t, http.StatusCreated, w.Code)
	var role struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Content.Data, &role))
	assert.Equal(t, "Editor", role.Name)

	w, env = api.do(t, http.MethodPost, "/v1/role", "", gin.H{"name": "Editor"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, pkg.CodeExists, env.Errors[0].Code)

	// 2 seed roles + Editor = 3 roles, one page
	w, env = api.do(t, http.MethodGet, "/v1/role", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var roles []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Content.Data, &roles))
	assert.Len(t, roles, 3)

	// out-of-range page is rejected here, unlike the other listings
	w, env = api.do(t, http.MethodGet, "/v1/role?page=5", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "page", env.Errors[0].Param)
	assert.Equal(t, pkg.CodeInvalidInput, env.Errors[0].Code)
}

func TestPaginationAcrossPages(t *testing.T) {
	api := newAPI(t)
	_, token := api.signup(t, "Owner", "owner@x.com")

	for i := 0; i < 7; i++ {
		w, _ := api.do(t, http.MethodPost, "/v1/community", token, gin.H{
			"name": fmt.Sprintf("Club %d", i),
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, env := api.do(t, http.MethodGet, "/v1/community?page=2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page2 []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Content.Data, &page2))
	assert.Len(t, page2, 2)

	var meta pkg.PageMeta
	require.NoError(t, json.Unmarshal(env.Content.Meta, &meta))
	assert.Equal(t, int64(7), meta.Total)
	assert.Equal(t, 2, meta.Pages)
	assert.Equal(t, 2, meta.Page)

	// past the end: empty data, same meta totals
	w, env = api.do(t, http.MethodGet, "/v1/community?page=9", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page9 []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Content.Data, &page9))
	assert.Empty(t, page9)
}

func TestHealthz(t *testing.T) {
	api := newAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	api.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
