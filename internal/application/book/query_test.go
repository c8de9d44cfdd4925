package book

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/source"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func seedBooks() []*book.Book {
	return []*book.Book{
		book.NewBook("1", "Chinua Achebe", "Things Fall Apart", nil),
		book.NewBook("2", "Hans Christian Andersen", "Fairy tales", map[string]string{"alice": "经典"}),
		book.NewBook("3", "Dante Alighieri", "The Divine Comedy", nil),
		book.NewBook("4", "Unknown", "The Epic Of Gilgamesh", nil),
		book.NewBook("5", "Unknown", "The Book Of Job", nil),
	}
}

func newUseCases() (*QueryBooksUseCase, *AsyncQueryUseCase) {
	repo := memory.NewBookRepository(seedBooks())
	return NewQueryBooksUseCase(book.NewService(repo)), NewAsyncQueryUseCase(source.NewLocalSource(repo))
}

func TestCatalog_MarshalJSON_KeepsOrder(t *testing.T) {
	c := NewCatalog([]*book.Book{
		book.NewBook("10", "Samuel Beckett", "Molloy", nil),
		book.NewBook("2", "Hans Christian Andersen", "Fairy tales", map[string]string{"alice": "经典"}),
	})

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t,
		`{"10":{"author":"Samuel Beckett","title":"Molloy","reviews":{}},"2":{"author":"Hans Christian Andersen","title":"Fairy tales","reviews":{"alice":"经典"}}}`,
		string(data))

	empty, err := json.Marshal(Catalog{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(empty))
}

func TestSyncAndAsyncAgree(t *testing.T) {
	sync, async := newUseCases()
	ctx := context.Background()

	t.Run("list-all", func(t *testing.T) {
		want, err := sync.ListAll(ctx)
		require.NoError(t, err)
		got, err := async.ListAll(ctx).Await(ctx)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(want, got))
		assert.Len(t, got, 5)
	})

	for _, isbn := range []string{"1", "2", "5"} {
		t.Run("get-by-id/"+isbn, func(t *testing.T) {
			want, err := sync.GetByISBN(ctx, isbn)
			require.NoError(t, err)
			got, err := async.GetByISBN(ctx, isbn).Await(ctx)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(want, got))
		})
	}

	for _, author := range []string{"unknown", "CHINUA ACHEBE", "Dante Alighieri"} {
		t.Run("get-by-author/"+author, func(t *testing.T) {
			want, err := sync.ByAuthor(ctx, author)
			require.NoError(t, err)
			got, err := async.ByAuthor(ctx, author).Await(ctx)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(want, got))
		})
	}

	for _, title := range []string{"fairy tales", "The Book Of Job"} {
		t.Run("get-by-title/"+title, func(t *testing.T) {
			want, err := sync.ByTitle(ctx, title)
			require.NoError(t, err)
			got, err := async.ByTitle(ctx, title).Await(ctx)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(want, got))
		})
	}
}

func TestSyncAndAsyncAgreeOnMisses(t *testing.T) {
	sync, async := newUseCases()
	ctx := context.Background()

	_, syncErr := sync.GetByISBN(ctx, "404")
	_, asyncErr := async.GetByISBN(ctx, "404").Await(ctx)
	assert.ErrorIs(t, syncErr, book.ErrBookNotFound)
	assert.ErrorIs(t, asyncErr, book.ErrBookNotFound)

	_, syncErr = sync.ByAuthor(ctx, "Achebe")
	_, asyncErr = async.ByAuthor(ctx, "Achebe").Await(ctx)
	assert.ErrorIs(t, syncErr, book.ErrAuthorNotFound)
	assert.ErrorIs(t, asyncErr, book.ErrAuthorNotFound)

	_, syncErr = sync.ByTitle(ctx, "Fairy")
	_, asyncErr = async.ByTitle(ctx, "Fairy").Await(ctx)
	assert.ErrorIs(t, syncErr, book.ErrTitleNotFound)
	assert.ErrorIs(t, asyncErr, book.ErrTitleNotFound)
}

func TestQueryBooks_Reviews(t *testing.T) {
	sync, _ := newUseCases()
	ctx := context.Background()

	reviews, err := sync.Reviews(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"alice": "经典"}, reviews)

	_, err = sync.Reviews(ctx, "1")
	assert.ErrorIs(t, err, book.ErrReviewsNotFound)
}

func TestQueryBooks_EmptyCatalog(t *testing.T) {
	repo := memory.NewBookRepository(nil)
	sync := NewQueryBooksUseCase(book.NewService(repo))
	async := NewAsyncQueryUseCase(source.NewLocalSource(repo))
	ctx := context.Background()

	c, err := sync.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, c)

	c, err = async.ListAll(ctx).Await(ctx)
	require.NoError(t, err)
	assert.Empty(t, c)
}

func TestAsyncQuery_SourceFailure(t *testing.T) {
	boom := errors.New("connection refused")
	async := NewAsyncQueryUseCase(book.SourceFunc(func(ctx context.Context) ([]*book.Book, error) {
		return nil, boom
	}))
	ctx := context.Background()

	_, err := async.GetByISBN(ctx, "1").Await(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, book.ErrSourceUnavailable)
	assert.ErrorIs(t, err, boom, "内部原因应保留在错误链中")
	assert.NotErrorIs(t, err, book.ErrBookNotFound)

	_, err = async.ListAll(ctx).Await(ctx)
	assert.Equal(t, apperrors.ErrCodeSourceUnavailable, apperrors.GetAppError(err).Code)
}

func TestAsyncQuery_AwaitHonoursContext(t *testing.T) {
	release := make(chan struct{})
	async := NewAsyncQueryUseCase(book.SourceFunc(func(ctx context.Context) ([]*book.Book, error) {
		select {
		case <-release:
			return seedBooks(), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	f := async.ListAll(ctx)
	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// 源也观察到同一个ctx，goroutine会退出
	<-f.Done()
	close(release)
}
