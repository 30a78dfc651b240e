package firestore

import (
	"strconv"
	"time"

	"github.com/riskibarqy/predipto/internal/domain/prediction"
	"github.com/riskibarqy/predipto/internal/domain/result"
	"github.com/riskibarqy/predipto/internal/domain/scoring"
	"github.com/riskibarqy/predipto/internal/domain/user"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	predictionsCollection = "predictions"
	resultsCollection     = "results"
	pointsCollection      = "points"
	usersCollection       = "users"
)

// predictionDoc is stored under predictions/<userID>_<matchID>.
type predictionDoc struct {
	UserID    string    `firestore:"userId"`
	MatchID   int64     `firestore:"matchId"`
	HomeScore int       `firestore:"homeScore"`
	AwayScore int       `firestore:"awayScore"`
	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

// resultDoc is stored under results/<matchID>.
type resultDoc struct {
	MatchID   int64     `firestore:"matchId"`
	HomeScore int       `firestore:"homeScore"`
	AwayScore int       `firestore:"awayScore"`
	CreatedBy string    `firestore:"createdBy"`
	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

// pointsDoc shares its document id with the prediction it scores.
type pointsDoc struct {
	UserID       string    `firestore:"userId"`
	MatchID      int64     `firestore:"matchId"`
	Points       int       `firestore:"points"`
	Tier         string    `firestore:"tier"`
	CalculatedAt time.Time `firestore:"calculatedAt"`
}

type userDoc struct {
	Email       string    `firestore:"email"`
	DisplayName string    `firestore:"displayName"`
	TotalPoints int       `firestore:"totalPoints"`
	IsAdmin     bool      `firestore:"isAdmin"`
	CreatedAt   time.Time `firestore:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt"`
}

func matchDocID(matchID int64) string {
	return strconv.FormatInt(matchID, 10)
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

func predictionToDoc(item prediction.Prediction) predictionDoc {
	return predictionDoc{
		UserID:    item.UserID,
		MatchID:   item.MatchID,
		HomeScore: item.HomeScore,
		AwayScore: item.AwayScore,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func predictionFromDoc(id string, doc predictionDoc) prediction.Prediction {
	return prediction.Prediction{
		ID:        id,
		UserID:    doc.UserID,
		MatchID:   doc.MatchID,
		HomeScore: doc.HomeScore,
		AwayScore: doc.AwayScore,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func resultToDoc(item result.Result) resultDoc {
	return resultDoc{
		MatchID:   item.MatchID,
		HomeScore: item.HomeScore,
		AwayScore: item.AwayScore,
		CreatedBy: item.CreatedBy,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func resultFromDoc(doc resultDoc) result.Result {
	return result.Result{
		MatchID:   doc.MatchID,
		HomeScore: doc.HomeScore,
		AwayScore: doc.AwayScore,
		CreatedBy: doc.CreatedBy,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func pointsToDoc(item scoring.Points) pointsDoc {
	return pointsDoc{
		UserID:       item.UserID,
		MatchID:      item.MatchID,
		Points:       item.Points,
		Tier:         string(item.Tier),
		CalculatedAt: item.CalculatedAt,
	}
}

func pointsFromDoc(doc pointsDoc) scoring.Points {
	return scoring.Points{
		UserID:       doc.UserID,
		MatchID:      doc.MatchID,
		Points:       doc.Points,
		Tier:         scoring.Tier(doc.Tier),
		CalculatedAt: doc.CalculatedAt,
	}
}

func userToDoc(profile user.Profile) userDoc {
	return userDoc{
		Email:       profile.Email,
		DisplayName: profile.DisplayName,
		TotalPoints: profile.TotalPoints,
		IsAdmin:     profile.IsAdmin,
		CreatedAt:   profile.CreatedAt,
		UpdatedAt:   profile.UpdatedAt,
	}
}

func userFromDoc(userID string, doc userDoc) user.Profile {
	return user.Profile{
		UserID:      userID,
		Email:       doc.Email,
		DisplayName: doc.DisplayName,
		TotalPoints: doc.TotalPoints,
		IsAdmin:     doc.IsAdmin,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}
