package engine

import (
	"math"

	"growthcast/domain/forecast"
)

// monthlyRetention is the fixed existing-user decay assumption: 5% of the
// population churns every 30 days, i.e. a constant daily retention rate of
// 0.95^(1/30).
const monthlyRetention = 0.95

// AccumulateNewUsers sums the surviving contribution, as of asOfDay, of every
// daily acquisition cohort in [fromDay, toDay). Each day's cohort is aged to
// asOfDay and weighted by its retained fraction.
//
// This is a direct O(horizon) summation rather than a closed-form cohort
// integral: neither supported curve family integrates cleanly under ramped
// acquisition rates, and the loop is at most a few hundred iterations.
func AccumulateNewUsers(dailyRate float64, fromDay, toDay, asOfDay int, curve forecast.CurveParams) float64 {
	if dailyRate == 0 || toDay <= fromDay {
		return 0
	}

	total := 0.0
	for cohortDay := fromDay; cohortDay < toDay; cohortDay++ {
		age := asOfDay - cohortDay
		if age < 0 {
			continue
		}
		total += dailyRate * curve.Evaluate(age)
	}
	return total
}

// AccumulateUplift sums, over the cohorts acquired in [fromDay, toDay), the
// exposed daily rate times the retention uplift (improved minus base, floored
// at zero) at each cohort's age as of asOfDay. Used for the new-user
// component of a retention initiative.
func AccumulateUplift(exposedDailyRate float64, fromDay, toDay, asOfDay int, base, improved forecast.CurveParams) float64 {
	if exposedDailyRate == 0 || toDay <= fromDay {
		return 0
	}

	total := 0.0
	for cohortDay := fromDay; cohortDay < toDay; cohortDay++ {
		age := asOfDay - cohortDay
		if age < 0 {
			continue
		}
		uplift := improved.Evaluate(age) - base.Evaluate(age)
		if uplift > 0 {
			total += exposedDailyRate * uplift
		}
	}
	return total
}

// FixedDecay returns the surviving existing-user population at the given day
// under the constant 5%-per-30-days churn model.
func FixedDecay(population float64, day int) float64 {
	if population == 0 || day <= 0 {
		return population
	}
	return population * math.Pow(monthlyRetention, float64(day)/float64(forecast.DaysPerMonth))
}
