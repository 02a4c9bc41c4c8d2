package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutQuiz(ctx context.Context, q Quiz) error {
	sj, err := json.Marshal(q.Settings)
	if err != nil {
		return err
	}
	qj, err := json.Marshal(q.Questions)
	if err != nil {
		return err
	}
	created := q.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO tests (id,title,created_at,settings_json,questions_json,source_text)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, settings_json=EXCLUDED.settings_json,
			questions_json=EXCLUDED.questions_json, source_text=EXCLUDED.source_text`,
		q.ID, q.Title, created.Unix(), string(sj), string(qj), q.SourceText)
	return err
}

// GetQuiz strips answer keys when serving to students. Masking happens here
// so every transport gets the same student-safe view.
func (s *SQLStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	q, err := s.GetQuizAdmin(ctx, id)
	if err != nil {
		return Quiz{}, err
	}
	for i := range q.Questions {
		q.Questions[i] = q.Questions[i].Redacted()
	}
	return q, nil
}

func (s *SQLStore) GetQuizAdmin(ctx context.Context, id string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,created_at,settings_json,questions_json,source_text FROM tests WHERE id=$1`, id)
	var (
		q       Quiz
		created int64
		sjson   string
		qjson   string
	)
	if err := row.Scan(&q.ID, &q.Title, &created, &sjson, &qjson, &q.SourceText); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrNotFound
		}
		return Quiz{}, err
	}
	q.CreatedAt = time.Unix(created, 0).UTC()
	if err := json.Unmarshal([]byte(sjson), &q.Settings); err != nil {
		return Quiz{}, err
	}
	if err := json.Unmarshal([]byte(qjson), &q.Questions); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

func (s *SQLStore) SaveSubmission(ctx context.Context, sub Submission) error {
	aj, err := json.Marshal(sub.Answers)
	if err != nil {
		return err
	}
	details := sub.Details
	if details == nil {
		details = []byte("[]")
	}
	submitted := sub.SubmittedAt
	if submitted.IsZero() {
		submitted = time.Now()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO submissions (id,test_id,submitted_at,student_name,answers_json,score,accuracy,details_json)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		sub.ID, sub.QuizID, submitted.Unix(), sub.StudentName, string(aj), sub.Score, sub.Accuracy, string(details))
	return err
}

func (s *SQLStore) GetSubmission(ctx context.Context, id string) (Submission, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,test_id,submitted_at,student_name,answers_json,score,accuracy,details_json FROM submissions WHERE id=$1`, id)
	var (
		sub       Submission
		submitted int64
		ajson     string
		djson     string
	)
	if err := row.Scan(&sub.ID, &sub.QuizID, &submitted, &sub.StudentName, &ajson, &sub.Score, &sub.Accuracy, &djson); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Submission{}, ErrSubmissionNotFound
		}
		return Submission{}, err
	}
	sub.SubmittedAt = time.Unix(submitted, 0).UTC()
	if err := json.Unmarshal([]byte(ajson), &sub.Answers); err != nil {
		sub.Answers = map[string]interface{}{}
	}
	sub.Details = []byte(djson)
	return sub, nil
}

func (s *SQLStore) SaveRating(ctx context.Context, r Rating) error {
	created := r.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO ratings (id,test_id,question_idx,rating,created_at)
		VALUES ($1,$2,$3,$4,$5)`,
		r.ID, r.QuizID, r.QuestionIdx, r.Rating, created.Unix())
	return err
}
