package firestore

import (
	"context"
	"errors"
	"fmt"

	fs "cloud.google.com/go/firestore"
	"github.com/riskibarqy/predipto/internal/domain/prediction"
	"github.com/riskibarqy/predipto/internal/domain/result"
	"github.com/riskibarqy/predipto/internal/domain/scoring"
	"github.com/riskibarqy/predipto/internal/domain/user"
)

var ErrUserExists = errors.New("user already exists")

type PredictionRepository struct {
	client *fs.Client
}

func NewPredictionRepository(client *fs.Client) *PredictionRepository {
	return &PredictionRepository{client: client}
}

func (r *PredictionRepository) Get(ctx context.Context, userID string, matchID int64) (prediction.Prediction, bool, error) {
	id := prediction.BuildID(userID, matchID)
	snap, err := r.client.Collection(predictionsCollection).Doc(id).Get(ctx)
	if isNotFound(err) {
		return prediction.Prediction{}, false, nil
	}
	if err != nil {
		return prediction.Prediction{}, false, fmt.Errorf("get prediction %s: %w", id, err)
	}

	var doc predictionDoc
	if err := snap.DataTo(&doc); err != nil {
		return prediction.Prediction{}, false, fmt.Errorf("decode prediction %s: %w", id, err)
	}
	return predictionFromDoc(id, doc), true, nil
}

func (r *PredictionRepository) Upsert(ctx context.Context, item prediction.Prediction) error {
	id := prediction.BuildID(item.UserID, item.MatchID)
	if _, err := r.client.Collection(predictionsCollection).Doc(id).Set(ctx, predictionToDoc(item)); err != nil {
		return fmt.Errorf("set prediction %s: %w", id, err)
	}
	return nil
}

func (r *PredictionRepository) ListByUser(ctx context.Context, userID string) ([]prediction.Prediction, error) {
	return r.query(ctx, r.client.Collection(predictionsCollection).Where("userId", "==", userID))
}

func (r *PredictionRepository) ListByMatch(ctx context.Context, matchID int64) ([]prediction.Prediction, error) {
	return r.query(ctx, r.client.Collection(predictionsCollection).Where("matchId", "==", matchID))
}

func (r *PredictionRepository) query(ctx context.Context, q fs.Query) ([]prediction.Prediction, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("query predictions: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(snaps))
	for _, snap := range snaps {
		var doc predictionDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode prediction %s: %w", snap.Ref.ID, err)
		}
		out = append(out, predictionFromDoc(snap.Ref.ID, doc))
	}
	return out, nil
}

type ResultRepository struct {
	client *fs.Client
}

func NewResultRepository(client *fs.Client) *ResultRepository {
	return &ResultRepository{client: client}
}

func (r *ResultRepository) Get(ctx context.Context, matchID int64) (result.Result, bool, error) {
	snap, err := r.client.Collection(resultsCollection).Doc(matchDocID(matchID)).Get(ctx)
	if isNotFound(err) {
		return result.Result{}, false, nil
	}
	if err != nil {
		return result.Result{}, false, fmt.Errorf("get result %d: %w", matchID, err)
	}

	var doc resultDoc
	if err := snap.DataTo(&doc); err != nil {
		return result.Result{}, false, fmt.Errorf("decode result %d: %w", matchID, err)
	}
	return resultFromDoc(doc), true, nil
}

func (r *ResultRepository) Upsert(ctx context.Context, item result.Result) error {
	if _, err := r.client.Collection(resultsCollection).Doc(matchDocID(item.MatchID)).Set(ctx, resultToDoc(item)); err != nil {
		return fmt.Errorf("set result %d: %w", item.MatchID, err)
	}
	return nil
}

func (r *ResultRepository) List(ctx context.Context) ([]result.Result, error) {
	snaps, err := r.client.Collection(resultsCollection).OrderBy("matchId", fs.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	out := make([]result.Result, 0, len(snaps))
	for _, snap := range snaps {
		var doc resultDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode result %s: %w", snap.Ref.ID, err)
		}
		out = append(out, resultFromDoc(doc))
	}
	return out, nil
}

type PointsRepository struct {
	client *fs.Client
}

func NewPointsRepository(client *fs.Client) *PointsRepository {
	return &PointsRepository{client: client}
}

func (r *PointsRepository) UpsertPoints(ctx context.Context, points scoring.Points) error {
	id := prediction.BuildID(points.UserID, points.MatchID)
	if _, err := r.client.Collection(pointsCollection).Doc(id).Set(ctx, pointsToDoc(points)); err != nil {
		return fmt.Errorf("set points %s: %w", id, err)
	}
	return nil
}

func (r *PointsRepository) GetPoints(ctx context.Context, userID string, matchID int64) (scoring.Points, bool, error) {
	id := prediction.BuildID(userID, matchID)
	snap, err := r.client.Collection(pointsCollection).Doc(id).Get(ctx)
	if isNotFound(err) {
		return scoring.Points{}, false, nil
	}
	if err != nil {
		return scoring.Points{}, false, fmt.Errorf("get points %s: %w", id, err)
	}

	var doc pointsDoc
	if err := snap.DataTo(&doc); err != nil {
		return scoring.Points{}, false, fmt.Errorf("decode points %s: %w", id, err)
	}
	return pointsFromDoc(doc), true, nil
}

func (r *PointsRepository) ListPointsByUser(ctx context.Context, userID string) ([]scoring.Points, error) {
	return r.query(ctx, r.client.Collection(pointsCollection).Where("userId", "==", userID))
}

func (r *PointsRepository) ListPointsByMatch(ctx context.Context, matchID int64) ([]scoring.Points, error) {
	return r.query(ctx, r.client.Collection(pointsCollection).Where("matchId", "==", matchID))
}

func (r *PointsRepository) query(ctx context.Context, q fs.Query) ([]scoring.Points, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("query points: %w", err)
	}

	out := make([]scoring.Points, 0, len(snaps))
	for _, snap := range snaps {
		var doc pointsDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode points %s: %w", snap.Ref.ID, err)
		}
		out = append(out, pointsFromDoc(doc))
	}
	return out, nil
}

type UserRepository struct {
	client *fs.Client
}

func NewUserRepository(client *fs.Client) *UserRepository {
	return &UserRepository{client: client}
}

func (r *UserRepository) Get(ctx context.Context, userID string) (user.Profile, bool, error) {
	snap, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if isNotFound(err) {
		return user.Profile{}, false, nil
	}
	if err != nil {
		return user.Profile{}, false, fmt.Errorf("get user %s: %w", userID, err)
	}

	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return user.Profile{}, false, fmt.Errorf("decode user %s: %w", userID, err)
	}
	return userFromDoc(userID, doc), true, nil
}

func (r *UserRepository) Create(ctx context.Context, profile user.Profile) error {
	_, err := r.client.Collection(usersCollection).Doc(profile.UserID).Create(ctx, userToDoc(profile))
	if isAlreadyExists(err) {
		return fmt.Errorf("%w: user=%s", ErrUserExists, profile.UserID)
	}
	if err != nil {
		return fmt.Errorf("create user %s: %w", profile.UserID, err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, profile user.Profile) error {
	_, err := r.client.Collection(usersCollection).Doc(profile.UserID).Update(ctx, []fs.Update{
		{Path: "displayName", Value: profile.DisplayName},
		{Path: "email", Value: profile.Email},
		{Path: "updatedAt", Value: profile.UpdatedAt},
	})
	if err != nil {
		return fmt.Errorf("update user %s: %w", profile.UserID, err)
	}
	return nil
}

func (r *UserRepository) SetTotalPoints(ctx context.Context, userID string, totalPoints int) error {
	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, []fs.Update{
		{Path: "totalPoints", Value: totalPoints},
		{Path: "updatedAt", Value: fs.ServerTimestamp},
	})
	if isNotFound(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("set total points %s: %w", userID, err)
	}
	return nil
}

// ListTopByPoints fetches the top documents by total and then the whole tie
// group at the cutoff, so the display-name order decides who stays in.
func (r *UserRepository) ListTopByPoints(ctx context.Context, limit int) ([]user.Profile, error) {
	users := r.client.Collection(usersCollection)
	q := users.OrderBy("totalPoints", fs.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}
	head, err := r.query(ctx, q)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || len(head) < limit {
		return topWithTies(head, nil, limit), nil
	}

	cutoff := head[len(head)-1].TotalPoints
	ties, err := r.query(ctx, users.Where("totalPoints", "==", cutoff))
	if err != nil {
		return nil, err
	}
	return topWithTies(head, ties, limit), nil
}

func (r *UserRepository) query(ctx context.Context, q fs.Query) ([]user.Profile, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list top users: %w", err)
	}

	out := make([]user.Profile, 0, len(snaps))
	for _, snap := range snaps {
		var doc userDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode user %s: %w", snap.Ref.ID, err)
		}
		out = append(out, userFromDoc(snap.Ref.ID, doc))
	}
	return out, nil
}

// topWithTies merges the tie group into head, orders by standing and trims to limit.
func topWithTies(head, ties []user.Profile, limit int) []user.Profile {
	seen := make(map[string]struct{}, len(head)+len(ties))
	out := make([]user.Profile, 0, len(head)+len(ties))
	for _, group := range [][]user.Profile{head, ties} {
		for _, profile := range group {
			if _, dup := seen[profile.UserID]; dup {
				continue
			}
			seen[profile.UserID] = struct{}{}
			out = append(out, profile)
		}
	}

	user.SortByStanding(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
