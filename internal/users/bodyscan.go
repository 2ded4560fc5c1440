package users

import (
	"errors"
	"math"
	"time"
)

var ErrScanDataMissing = errors.New("height, weight and age are needed for a body scan")

// BodyScan is a rough, fully deterministic estimate from profile data.
// No camera involved, the name stuck from the app screen it feeds.
type BodyScan struct {
	BMR         int       `json:"bmr"`
	TDEE        int       `json:"tdee"`
	BodyFatPct  float64   `json:"bodyFatPct"`
	EstimatedAt time.Time `json:"estimatedAt"`
}

// EstimateBodyScan computes BMR (Mifflin-St Jeor), TDEE from weekly
// training days and a BMI-based body-fat guess (Deurenberg). Unknown
// sex uses the midpoint of the male/female terms.
func EstimateBodyScan(user User, now time.Time) (*BodyScan, error) {
	if user.HeightCm <= 0 || user.WeightKg <= 0 || user.Age <= 0 {
		return nil, ErrScanDataMissing
	}

	bmr := 10*user.WeightKg + 6.25*user.HeightCm - 5*float64(user.Age)
	switch user.Sex {
	case "male":
		bmr += 5
	case "female":
		bmr -= 161
	default:
		bmr -= 78
	}

	tdee := bmr * activityFactor(user.TrainingDays)

	heightM := user.HeightCm / 100
	bmi := user.WeightKg / (heightM * heightM)
	sexFactor := 0.5
	switch user.Sex {
	case "male":
		sexFactor = 1
	case "female":
		sexFactor = 0
	}
	bodyFat := 1.2*bmi + 0.23*float64(user.Age) - 10.8*sexFactor - 5.4
	if bodyFat < 3 {
		bodyFat = 3
	}
	if bodyFat > 60 {
		bodyFat = 60
	}

	return &BodyScan{
		BMR:         int(math.Round(bmr)),
		TDEE:        int(math.Round(tdee)),
		BodyFatPct:  math.Round(bodyFat*10) / 10,
		EstimatedAt: now,
	}, nil
}

func activityFactor(trainingDays int) float64 {
	switch {
	case trainingDays <= 1:
		return 1.2
	case trainingDays <= 3:
		return 1.375
	case trainingDays <= 5:
		return 1.55
	default:
		return 1.725
	}
}
