package ports

import "cityverse/internal/domain/mission"

type MissionMetrics interface {
	RecordActivation(kind mission.Kind)
	RecordOutcome(kind mission.Kind, success bool, reason mission.FailReason)
	RecordConflict()
	RecordRejected()
}
