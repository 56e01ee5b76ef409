// Package variables classifies dataset column names into time slices and
// semantic groups using the pipeline's naming conventions.
//
// Conventions:
//
//   - A column measured i steps in the past carries the literal suffix
//     "_lag<i>" (e.g. "Shot_Make_home_lag2"). A name with no lag suffix
//     belongs to the current slice.
//   - Season-to-date lineup statistics carry the substring "BUCKET".
//   - Column names beginning with a digit are normalized with a fixed "X"
//     prefix so that data columns and user-supplied edge lists agree.
//
// Classify partitions a column set into slices {current, lag_1..lag_L} and
// into {lineup-statistic, other}; every variable lands in exactly one slice.
// The resulting Partition is the sole input of the blacklist builder.
package variables
