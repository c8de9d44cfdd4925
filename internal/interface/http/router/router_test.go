package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/application/dispatch"
	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/source"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func seedBooks() []*book.Book {
	return []*book.Book{
		book.NewBook("1", "Chinua Achebe", "Things Fall Apart", nil),
		book.NewBook("2", "Hans Christian Andersen", "Fairy tales", map[string]string{"alice": "经典"}),
		book.NewBook("10", "Samuel Beckett", "Molloy, Malone Dies, The Unnamable, the trilogy", nil),
	}
}

func newEngine(books []*book.Book, src book.Source) (*gin.Engine, *prometheus.Registry) {
	log := zap.NewNop()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	repo := memory.NewBookRepository(books)
	if src == nil {
		src = source.NewLocalSource(repo)
	}
	d := dispatch.NewDispatcher(
		appbook.NewQueryBooksUseCase(book.NewService(repo)),
		appbook.NewAsyncQueryUseCase(src),
		appuser.NewRegisterUseCase(user.NewService(memory.NewUserRepository(), nil), nil, log, m),
		log,
		m,
	)

	return New(log, m,
		handler.NewBookHandler(d),
		handler.NewAsyncBookHandler(d),
		handler.NewUserHandler(d),
		Options{MetricsPath: "/metrics", Gatherer: reg},
	), reg
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes_Books(t *testing.T) {
	r, _ := newEngine(seedBooks(), nil)

	cases := []struct {
		name   string
		path   string
		status int
		body   string
	}{
		{
			"完整目录保持插入顺序", "/api/v1/books", http.StatusOK,
			`{"code":0,"message":"success","data":{"1":{"author":"Chinua Achebe","title":"Things Fall Apart","reviews":{}},"2":{"author":"Hans Christian Andersen","title":"Fairy tales","reviews":{"alice":"经典"}},"10":{"author":"Samuel Beckett","title":"Molloy, Malone Dies, The Unnamable, the trilogy","reviews":{}}}}`,
		},
		{
			"按ISBN", "/api/v1/books/isbn/1", http.StatusOK,
			`{"code":0,"message":"success","data":{"author":"Chinua Achebe","title":"Things Fall Apart","reviews":{}}}`,
		},
		{
			"ISBN不存在", "/api/v1/books/isbn/404", http.StatusNotFound,
			`{"code":40402,"message":"图书不存在","data":null}`,
		},
		{
			"按作者忽略大小写", "/api/v1/books/author/chinua%20achebe", http.StatusOK,
			`{"code":0,"message":"success","data":[{"author":"Chinua Achebe","title":"Things Fall Apart","reviews":{}}]}`,
		},
		{
			"作者不做子串匹配", "/api/v1/books/author/Achebe", http.StatusNotFound,
			`{"code":40403,"message":"没有找到该作者的图书","data":null}`,
		},
		{
			"按书名", "/api/v1/books/title/FAIRY%20TALES", http.StatusOK,
			`{"code":0,"message":"success","data":[{"author":"Hans Christian Andersen","title":"Fairy tales","reviews":{"alice":"经典"}}]}`,
		},
		{
			"书评", "/api/v1/books/review/2", http.StatusOK,
			`{"code":0,"message":"success","data":{"alice":"经典"}}`,
		},
		{
			"没有书评", "/api/v1/books/review/1", http.StatusNotFound,
			`{"code":40405,"message":"没有找到该图书的书评","data":null}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, http.MethodGet, tc.path, "")
			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}

	// JSONEq不检查key顺序，单独验证
	w := do(r, http.MethodGet, "/api/v1/books", "")
	body := w.Body.String()
	assert.Less(t, strings.Index(body, `"1":`), strings.Index(body, `"2":`))
	assert.Less(t, strings.Index(body, `"2":`), strings.Index(body, `"10":`))
}

func TestRoutes_AsyncMatchesSync(t *testing.T) {
	r, _ := newEngine(seedBooks(), nil)

	pairs := [][2]string{
		{"/api/v1/books", "/api/v1/async/books"},
		{"/api/v1/books/isbn/2", "/api/v1/async/isbn/2"},
		{"/api/v1/books/isbn/404", "/api/v1/async/isbn/404"},
		{"/api/v1/books/author/UNKNOWN", "/api/v1/async/author/UNKNOWN"},
		{"/api/v1/books/title/things%20fall%20apart", "/api/v1/async/title/things%20fall%20apart"},
	}
	for _, p := range pairs {
		sync := do(r, http.MethodGet, p[0], "")
		async := do(r, http.MethodGet, p[1], "")
		assert.Equal(t, sync.Code, async.Code, p[1])
		assert.Equal(t, sync.Body.String(), async.Body.String(), p[1])
	}
}

func TestRoutes_AsyncSourceFailure(t *testing.T) {
	failing := book.SourceFunc(func(ctx context.Context) ([]*book.Book, error) {
		return nil, errors.New("connection refused")
	})
	r, _ := newEngine(seedBooks(), failing)

	w := do(r, http.MethodGet, "/api/v1/async/isbn/1", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":50003,"message":"获取图书数据失败","data":null}`, w.Body.String())

	// 同步路径不受影响
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/books/isbn/1", "").Code)
}

func TestRoutes_AsyncOverHTTPSelfCall(t *testing.T) {
	// 异步路径通过HTTP回调自身的完整目录接口
	var remote book.Source
	lazy := book.SourceFunc(func(ctx context.Context) ([]*book.Book, error) {
		return remote.FetchAll(ctx)
	})
	r, _ := newEngine(seedBooks(), lazy)

	srv := httptest.NewServer(r)
	defer srv.Close()
	remote = source.NewHTTPSource(srv.URL+"/api/v1/books", 2*time.Second)

	for _, pair := range [][2]string{
		{"/api/v1/books", "/api/v1/async/books"},
		{"/api/v1/books/isbn/10", "/api/v1/async/isbn/10"},
		{"/api/v1/books/author/samuel%20beckett", "/api/v1/async/author/samuel%20beckett"},
	} {
		sync := do(r, http.MethodGet, pair[0], "")
		async := do(r, http.MethodGet, pair[1], "")
		assert.Equal(t, http.StatusOK, async.Code)
		assert.Equal(t, sync.Body.String(), async.Body.String())
	}
}

func TestRoutes_AsyncMalformedRemoteBody(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer remote.Close()

	r, _ := newEngine(seedBooks(), source.NewHTTPSource(remote.URL, time.Second))

	for _, path := range []string{"/api/v1/async/books", "/api/v1/async/isbn/1", "/api/v1/async/author/chinua%20achebe"} {
		w := do(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.JSONEq(t, `{"code":50003,"message":"获取图书数据失败","data":null}`, w.Body.String(), path)
	}
}

func TestRoutes_Register(t *testing.T) {
	r, _ := newEngine(nil, nil)

	w := do(r, http.MethodPost, "/api/v1/users/register", `{"username":"alice","password":"pw"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":0,"message":"注册成功，现在可以登录了","data":{"username":"alice"}}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/v1/users/register", `{"username":"alice","password":"pw2"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"code":40003,"message":"用户名已存在","data":null}`, w.Body.String())

	for _, body := range []string{`{"username":"","password":"x"}`, `{"username":"x"}`, `{}`} {
		w = do(r, http.MethodPost, "/api/v1/users/register", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.NotContains(t, w.Body.String(), "password", "失败响应不回显请求内容")
	}

	w = do(r, http.MethodPost, "/api/v1/users/register", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"code":40901,"message":"参数格式错误","data":null}`, w.Body.String())
}

func TestRoutes_PingAndMetrics(t *testing.T) {
	r, _ := newEngine(seedBooks(), nil)

	w := do(r, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")

	do(r, http.MethodGet, "/api/v1/books/isbn/1", "")
	w = do(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `catalog_dispatch_total{intent="get-by-id",outcome="SUCCESS"} 1`)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",path="/api/v1/books/isbn/:isbn",status="200"} 1`)
}
