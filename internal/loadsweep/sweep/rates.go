package sweep

const usPerSecond = 1000.0 * 1000.0

// TotalCapacity returns the number of requests per second that cores cores can serve when each request
// takes meanServiceTimeUs microseconds on average, i.e. cores * 1e6 / meanServiceTimeUs.
func TotalCapacity(meanServiceTimeUs float64, cores int) float64 {
	servicePerCoreUs := 1 / meanServiceTimeUs
	rpsPerCore := servicePerCoreUs * usPerSecond
	return rpsPerCore * float64(cores)
}

// InjectedRates returns, for each load level, the arrival rate in requests per microsecond
// that offers that fraction of TotalCapacity. The result has the same length and order as loadLevels.
func InjectedRates(loadLevels []float64, meanServiceTimeUs float64, cores int) []float64 {
	total := TotalCapacity(meanServiceTimeUs, cores)
	rates := make([]float64, len(loadLevels))
	for i, level := range loadLevels {
		injectedRps := level * total
		rates[i] = injectedRps / usPerSecond
	}
	return rates
}
