// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package port

import "code.hybscloud.com/atomix"

// CorrelationID identifies one outstanding request/result pair.
// The runtime treats it as opaque; it only compares ids for equality.
type CorrelationID uint32

// correlations is the process-wide monotonic counter behind NextCorrelation.
var correlations atomix.Uint32

// NextCorrelation returns the next monotonically increasing correlation id.
// Ids never repeat within a process until the counter wraps.
func NextCorrelation() CorrelationID {
	return CorrelationID(correlations.Add(1))
}
