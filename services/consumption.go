package services

// Job outcome states as stored by the frontend.
const (
	JobFinished = "terminada"
	JobFailed   = "fallida"
)

// JobOutcome is one finished or failed print job with the resources it
// consumed. Completion is the fraction of the job done before failure and
// is only consulted for failed jobs.
type JobOutcome struct {
	Status        string  `json:"status"`
	Hours         float64 `json:"hours"`
	MaterialGrams float64 `json:"material_grams"`
	EnergyKwh     float64 `json:"energy_kwh"`
	Completion    float64 `json:"completion"`
}

// ConsumptionSummary totals the material, energy and time actually spent
// across finished and failed jobs.
type ConsumptionSummary struct {
	TotalHours         float64 `json:"total_hours"`
	TotalMaterialGrams float64 `json:"total_material_grams"`
	TotalEnergyKwh     float64 `json:"total_energy_kwh"`
	FinishedJobs       int     `json:"finished_jobs"`
	FailedJobs         int     `json:"failed_jobs"`
	FailurePercent     float64 `json:"failure_percent"`
}

// AggregateConsumption sums consumption over jobs. Finished jobs contribute
// in full; failed jobs contribute their values weighted by the clamped
// completion fraction, so a failure with no recorded completion contributes
// nothing. Non-finite fields count as 0.
func AggregateConsumption(jobs []JobOutcome) ConsumptionSummary {
	var summary ConsumptionSummary

	for _, job := range jobs {
		hours := finiteOr(job.Hours, 0)
		grams := finiteOr(job.MaterialGrams, 0)
		kwh := finiteOr(job.EnergyKwh, 0)

		switch job.Status {
		case JobFinished:
			summary.FinishedJobs++
			summary.TotalHours += hours
			summary.TotalMaterialGrams += grams
			summary.TotalEnergyKwh += kwh
		case JobFailed:
			summary.FailedJobs++
			weight := clamp01(job.Completion)
			summary.TotalHours += hours * weight
			summary.TotalMaterialGrams += grams * weight
			summary.TotalEnergyKwh += kwh * weight
		}
	}

	attempts := summary.FinishedJobs + summary.FailedJobs
	if attempts > 0 {
		summary.FailurePercent = float64(summary.FailedJobs) / float64(attempts) * 100
	}

	return summary
}
