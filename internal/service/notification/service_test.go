package notification

import (
	"context"
	"strconv"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamkke-hr/hr-backend-go/internal/domain/notification"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/user"
)

type fakeRepo struct {
	rows   []*notification.Notification
	nextID int
}

func (f *fakeRepo) Create(_ context.Context, n *notification.Notification) error {
	f.nextID++
	n.ID = "n-" + strconv.Itoa(f.nextID)
	clone := *n
	f.rows = append(f.rows, &clone)
	return nil
}

func (f *fakeRepo) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	for _, n := range notifications {
		if err := f.Create(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*notification.Notification, error) {
	for _, row := range f.rows {
		if row.ID == id {
			clone := *row
			return &clone, nil
		}
	}
	return nil, notification.ErrNotificationNotFound
}

func (f *fakeRepo) ListForUser(_ context.Context, userID string) ([]*notification.Notification, error) {
	var out []*notification.Notification
	for _, row := range f.rows {
		if row.UserID == nil || *row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeRepo) UnreadCount(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, row := range f.rows {
		if row.UserID != nil && *row.UserID == userID && !row.Read {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) MarkRead(_ context.Context, id string, userID string) error {
	for _, row := range f.rows {
		if row.ID == id && row.UserID != nil && *row.UserID == userID {
			row.Read = true
			return nil
		}
	}
	return notification.ErrNotificationNotFound
}

func (f *fakeRepo) HasUserCopy(_ context.Context, userID string, message string) (bool, error) {
	for _, row := range f.rows {
		if row.UserID != nil && *row.UserID == userID && row.Message == message {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) MarkUserCopiesRead(_ context.Context, userID string, message string) error {
	for _, row := range f.rows {
		if row.UserID != nil && *row.UserID == userID && row.Message == message {
			row.Read = true
		}
	}
	return nil
}

type fakeUserRepo struct {
	user.UserRepository
	ids []string
}

func (f *fakeUserRepo) ListActiveIDs(_ context.Context) ([]string, error) {
	return f.ids, nil
}

func userContext(t *testing.T, userID string) context.Context {
	t.Helper()
	auth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := auth.Encode(map[string]interface{}{"user_id": userID, "role": "employee"})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestBroadcastMaterializesPerUserCopies(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewNotificationService(repo, &fakeUserRepo{ids: []string{"emp-1", "emp-2", "emp-3"}})

	recipients, err := svc.Broadcast(context.Background(), notification.BroadcastRequest{Message: "Office closed Friday"})
	require.NoError(t, err)
	assert.Equal(t, 3, recipients)

	// one personal copy per active user, nothing else
	require.Len(t, repo.rows, 3)
	for _, row := range repo.rows {
		require.NotNil(t, row.UserID)
		assert.False(t, row.Read)
	}

	count, err := repo.UnreadCount(context.Background(), "emp-2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestBroadcastDeliversMessageOncePerRecipient(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewNotificationService(repo, &fakeUserRepo{ids: []string{"emp-1", "emp-2"}})

	_, err := svc.Broadcast(context.Background(), notification.BroadcastRequest{Message: "Payroll moved to the 28th"})
	require.NoError(t, err)

	rows, err := svc.ListMine(userContext(t, "emp-1"))
	require.NoError(t, err)

	seen := 0
	for _, row := range rows {
		if row.Message == "Payroll moved to the 28th" {
			seen++
		}
	}
	assert.Equal(t, 1, seen)
}

func TestBroadcastRejectsEmptyMessage(t *testing.T) {
	svc := NewNotificationService(&fakeRepo{}, &fakeUserRepo{})
	_, err := svc.Broadcast(context.Background(), notification.BroadcastRequest{Message: "   "})
	assert.Error(t, err)
}

func TestMarkReadOnBroadcastCreatesReadCopy(t *testing.T) {
	repo := &fakeRepo{}
	// a broadcast row the user has no personal copy of
	require.NoError(t, repo.Create(context.Background(), &notification.Notification{Message: "Policy update"}))
	broadcastID := repo.rows[0].ID

	svc := NewNotificationService(repo, &fakeUserRepo{})
	err := svc.MarkRead(userContext(t, "emp-1"), broadcastID)
	require.NoError(t, err)

	// the broadcast row is untouched; the user now holds a read copy
	assert.Nil(t, repo.rows[0].UserID)
	require.Len(t, repo.rows, 2)
	copyRow := repo.rows[1]
	require.NotNil(t, copyRow.UserID)
	assert.Equal(t, "emp-1", *copyRow.UserID)
	assert.True(t, copyRow.Read)
	assert.Equal(t, "Policy update", copyRow.Message)
}

func TestMarkReadOnOwnNotification(t *testing.T) {
	repo := &fakeRepo{}
	userID := "emp-1"
	require.NoError(t, repo.Create(context.Background(), &notification.Notification{UserID: &userID, Message: "hello"}))

	svc := NewNotificationService(repo, &fakeUserRepo{})
	require.NoError(t, svc.MarkRead(userContext(t, "emp-1"), repo.rows[0].ID))
	assert.True(t, repo.rows[0].Read)
}

func TestListMineIncludesBroadcasts(t *testing.T) {
	repo := &fakeRepo{}
	userID := "emp-1"
	otherID := "emp-2"
	require.NoError(t, repo.Create(context.Background(), &notification.Notification{UserID: &userID, Message: "mine"}))
	require.NoError(t, repo.Create(context.Background(), &notification.Notification{UserID: &otherID, Message: "theirs"}))
	require.NoError(t, repo.Create(context.Background(), &notification.Notification{Message: "everyone"}))

	svc := NewNotificationService(repo, &fakeUserRepo{})
	rows, err := svc.ListMine(userContext(t, "emp-1"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	messages := []string{rows[0].Message, rows[1].Message}
	assert.Contains(t, messages, "mine")
	assert.Contains(t, messages, "everyone")
}
