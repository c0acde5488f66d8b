package runtime

import "github.com/aretw0/truman/pkg/domain"

// Transitions lists every edge of the state graph with a human-readable
// guard. The opening edge out of Begin follows cfg.
func Transitions(cfg domain.Config) []domain.Transition {
	return []domain.Transition{
		{From: domain.Begin, To: cfg.OpeningState()},
		{From: domain.RampUpShootStageOne, To: domain.RampUpShootStageTwo, Condition: "elapsed >= 0.6s"},
		{From: domain.RampUpShootStageTwo, To: domain.ShootingBalls, Condition: "elapsed >= 0.6s"},
		{From: domain.ShootingBalls, To: domain.RampDownShootStageOne, Condition: "elapsed >= 2s"},
		{From: domain.RampDownShootStageOne, To: domain.RampDownShootStageTwo, Condition: "elapsed >= 0.6s"},
		{From: domain.RampDownShootStageTwo, To: domain.Start, Condition: "elapsed >= 0.6s"},
		{From: domain.DrivingTowardsBall, To: domain.Start, Condition: "elapsed >= 2.75s"},
		{From: domain.Start, To: domain.Turning, Condition: "time >= start delay"},
		{From: domain.BackingFromBall, To: domain.Turning, Condition: "elapsed >= 1s"},
		{From: domain.Turning, To: domain.Searching, Condition: "elapsed >= 1.2s"},
		{From: domain.Searching, To: domain.Stopped, Condition: "brightness >= 3"},
		{From: domain.Stopped, To: domain.MovingBeyond, Condition: "elapsed > 1s"},
		{From: domain.MovingBeyond, To: domain.MovingTimed, Condition: "brightness <= 1"},
		{From: domain.MovingTimed, To: domain.Orienting, Condition: "elapsed > time to move"},
		{From: domain.Orienting, To: domain.Moving, Condition: "brightness >= 3"},
		{From: domain.OrientingFurther, To: domain.OrientingBack, Condition: "brightness <= 1"},
		{From: domain.OrientingBack, To: domain.Moving, Condition: "elapsed > time to move / 2"},
		{From: domain.Moving, To: domain.ScanningLeft, Condition: "optical >= 10"},
		{From: domain.Moving, To: domain.Backing, Condition: "elapsed > 3s"},
		{From: domain.ScanningLeft, To: domain.CenteringFromLeft, Condition: "guess or elapsed >= 1s"},
		{From: domain.CenteringFromLeft, To: domain.ScanningRight, Condition: "elapsed >= scan duration"},
		{From: domain.ScanningRight, To: domain.CenteringFromRight, Condition: "guess or elapsed >= scan duration"},
		{From: domain.CenteringFromRight, To: domain.Picking},
		{From: domain.Picking, To: domain.GoLeft, Condition: "left == target"},
		{From: domain.Picking, To: domain.GoRight, Condition: "right == target or fallback"},
		{From: domain.GoLeft, To: domain.Clicking, Condition: "elapsed >= 0.4s"},
		{From: domain.GoRight, To: domain.Clicking, Condition: "elapsed >= 0.4s"},
		{From: domain.Clicking, To: domain.Backing, Condition: "elapsed >= 1s"},
		{From: domain.Backing, To: domain.Done, Condition: "time >= 10s and elapsed >= 1s"},
	}
}
