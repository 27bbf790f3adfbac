package forecast

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/sartorproj/demandwise/arima"
)

// CacheKey identifies the forecast outcome of a history, order and step
// count. Fitting is deterministic, so equal keys give equal predictions.
func CacheKey(history []float64, order arima.Order, steps int) string {
	d := xxhash.New()
	var buf [8]byte
	for _, v := range []int{order.P, order.D, order.Q, steps, len(history)} {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		d.Write(buf[:])
	}
	for _, v := range history {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		d.Write(buf[:])
	}
	return "demandwise:predictions:" + strconv.FormatUint(d.Sum64(), 16)
}
