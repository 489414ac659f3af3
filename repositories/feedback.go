//go:generate go run go.uber.org/mock/mockgen -source=feedback.go -destination=../mocks/mock_feedback_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"time"

	"folio-gate/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const FeedbackPrefix = "feedback:"

type IFeedbackRepository interface {
	StoreFeedback(feedback domain.Feedback) error
	ListFeedback() ([]domain.Feedback, error)
}

type FeedbackRepository struct {
	db    *badger.DB
	log   *slog.Logger
	limit *int
}

func NewFeedbackRepository(db *badger.DB, log *slog.Logger, limit *int) FeedbackRepository {
	return FeedbackRepository{db: db, log: log, limit: limit}
}

// StoreFeedback persists a submission in BadgerDB.
// The key is formatted as "feedback:{timestamp_padded}:{uuid}" so that a
// prefix scan returns submissions in chronological order and two entries
// sharing a nanosecond cannot overwrite each other.
func (f FeedbackRepository) StoreFeedback(feedback domain.Feedback) error {
	key := FeedbackKey(feedback)
	value, err := fromFeedback(feedback)
	if err != nil {
		return err
	}
	bytes, err := proto.Marshal(value)
	if err != nil {
		return err
	}
	return f.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// ListFeedback returns every stored submission, newest first, up to the configured limit.
func (f FeedbackRepository) ListFeedback() ([]domain.Feedback, error) {
	var raw [][]byte
	err := f.db.View(func(txn *badger.Txn) error {
		prefix := []byte(FeedbackPrefix)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		// Reverse iteration must start past the last possible key of the prefix.
		for it.Seek(append(prefix, 0xFF)); it.ValidForPrefix(prefix); it.Next() {
			if f.limit != nil && len(raw) == *f.limit {
				f.log.Debug(fmt.Sprintf("Maximum of %d feedback reached", *f.limit))
				break
			}
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			raw = append(raw, value)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	feedbacks := make([]domain.Feedback, 0, len(raw))
	for _, b := range raw {
		var s structpb.Struct
		if err = proto.Unmarshal(b, &s); err != nil {
			return nil, err
		}
		feedback, err := toFeedback(&s)
		if err != nil {
			return nil, err
		}
		feedbacks = append(feedbacks, feedback)
	}
	return feedbacks, nil
}

func FeedbackKey(feedback domain.Feedback) string {
	return fmt.Sprintf("%s%019d:%s", FeedbackPrefix, feedback.Date.UnixNano(), feedback.ID)
}

func fromFeedback(feedback domain.Feedback) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"id":                     feedback.ID.String(),
		"name":                   feedback.Name,
		"design":                 feedback.Design,
		"usability":              feedback.Usability,
		"content":                feedback.Content,
		"additional_suggestions": feedback.AdditionalSuggestions,
		"date":                   feedback.Date.UTC().Format(time.RFC3339Nano),
	})
}

// ToFeedback decodes a raw stored value, used by the inspection tools.
func ToFeedback(value []byte) (domain.Feedback, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(value, &s); err != nil {
		return domain.Feedback{}, err
	}
	return toFeedback(&s)
}

func toFeedback(s *structpb.Struct) (domain.Feedback, error) {
	fields := s.GetFields()
	str := func(name string) string { return fields[name].GetStringValue() }

	id, err := uuid.Parse(str("id"))
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("invalid feedback id: %w", err)
	}
	date, err := time.Parse(time.RFC3339Nano, str("date"))
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("invalid feedback date: %w", err)
	}
	return domain.Feedback{
		ID:                    id,
		Name:                  str("name"),
		Design:                str("design"),
		Usability:             str("usability"),
		Content:               str("content"),
		AdditionalSuggestions: str("additional_suggestions"),
		Date:                  date.UTC(),
	}, nil
}
