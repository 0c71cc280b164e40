package pipeline

import "github.com/nodari-ai/sales-engine/internal/model"

// Route classifies a 0-100 score against the two configured thresholds.
// hotThreshold must be greater than warmThreshold.
func Route(score, hotThreshold, warmThreshold int) model.LeadCategory {
	switch {
	case score >= hotThreshold:
		return model.CategoryHot
	case score >= warmThreshold:
		return model.CategoryWarm
	default:
		return model.CategoryNurture
	}
}

// trackFor maps a category to its follow-up track.
func trackFor(cat model.LeadCategory) model.FollowUpTrack {
	switch cat {
	case model.CategoryHot:
		return model.TrackHot
	case model.CategoryWarm:
		return model.TrackWarm
	default:
		return model.TrackNurture
	}
}
