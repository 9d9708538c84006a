package connections

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/scholaria/scholaria-backend/src/models"
)

// discoverLimit caps the candidate set returned to the discover view.
const discoverLimit = 50

// GormStore persists accounts and connection requests through GORM.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// FetchAccounts returns every profile except the given one, ordered by name.
func (s *GormStore) FetchAccounts(ctx context.Context, excludingID uint) ([]Account, error) {
	var profiles []models.Profile
	err := s.db.WithContext(ctx).
		Where("id <> ?", excludingID).
		Order("full_name").
		Limit(discoverLimit).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}

	accounts := make([]Account, 0, len(profiles))
	for i := range profiles {
		accounts = append(accounts, accountFromProfile(&profiles[i]))
	}
	return accounts, nil
}

// FetchRequests returns every request the user is a party of.
func (s *GormStore) FetchRequests(ctx context.Context, forUserID uint) ([]Request, error) {
	var rows []models.Connection
	err := s.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", forUserID, forUserID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	requests := make([]Request, 0, len(rows))
	for i := range rows {
		requests = append(requests, requestFromRow(&rows[i]))
	}
	return requests, nil
}

// FetchRequestByID looks up a single request.
func (s *GormStore) FetchRequestByID(ctx context.Context, id uint) (Request, error) {
	var row models.Connection
	err := s.db.WithContext(ctx).First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Request{}, ErrRequestNotFound
		}
		return Request{}, err
	}
	return requestFromRow(&row), nil
}

// InsertRequest creates a pending request. The unique index on the normalized
// pair columns turns a concurrent duplicate into ErrDuplicateRequest.
func (s *GormStore) InsertRequest(ctx context.Context, senderID, receiverID uint, message string) (Request, error) {
	row := models.Connection{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.ConnectionStatusPending,
		Message:    message,
	}

	err := s.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		if isUniqueViolation(err) {
			return Request{}, ErrDuplicateRequest
		}
		return Request{}, err
	}
	return requestFromRow(&row), nil
}

// UpdateRequestStatus transitions a request out of pending. The update is
// conditioned on the current status so two concurrent responders cannot both
// win: the loser sees zero rows affected and gets ErrAlreadyResolved.
func (s *GormStore) UpdateRequestStatus(ctx context.Context, id uint, status Status) error {
	result := s.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("id = ? AND status = ?", id, models.ConnectionStatusPending).
		Updates(map[string]interface{}{
			"status":     models.ConnectionStatus(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Nothing matched: the id is unknown or the row already left pending.
	var row models.Connection
	err := s.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRequestNotFound
	}
	if err != nil {
		return err
	}
	return ErrAlreadyResolved
}

func accountFromProfile(p *models.Profile) Account {
	return Account{
		ID:            p.ID,
		FullName:      p.FullName,
		Institution:   p.Institution,
		AcademicTitle: p.AcademicTitle,
		AvatarURL:     p.AvatarURL,
	}
}

func requestFromRow(row *models.Connection) Request {
	return Request{
		ID:         row.ID,
		SenderID:   row.SenderID,
		ReceiverID: row.ReceiverID,
		Status:     Status(row.Status),
		Message:    row.Message,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
