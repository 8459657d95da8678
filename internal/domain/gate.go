package domain

// Gate predicates for the daily attendance cycle. The server enforces
// these on submission; clients render buttons from the same answers.

// CanClockIn holds when no record exists for the day yet, or the
// existing one was rejected and the employee must re-submit.
func CanClockIn(rec *Attendance) bool {
	return rec == nil || rec.Status == AttendanceRejected
}

// CanClockOut holds once the record is clocked in and approved but not
// yet clocked out. Setting time-out closes the day: neither predicate
// holds afterwards.
func CanClockOut(rec *Attendance) bool {
	return rec != nil && rec.TimeIn != nil && rec.Status == AttendanceApproved && rec.TimeOut == nil
}
