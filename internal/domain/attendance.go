package domain

// AttendanceStatus marks a single employee on a single day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// DateLayout is the storage format of attendance days.
const DateLayout = "2006-01-02"

// AttendanceRecord is one line of a day's sheet.
type AttendanceRecord struct {
	EmployeeID   string           `json:"employee"`
	EmployeeCode string           `json:"employeeId,omitempty"`
	FirstName    string           `json:"firstName,omitempty"`
	LastName     string           `json:"lastName,omitempty"`
	DepartmentID string           `json:"department,omitempty"`
	Status       AttendanceStatus `json:"status"`
}

// AttendanceSheet is the attendance of all employees for one date.
type AttendanceSheet struct {
	Date    string             `json:"date"`
	Records []AttendanceRecord `json:"records"`
}

// AttendanceDay is a per-date present/absent count.
type AttendanceDay struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
}

// EmployeeAttendanceDay is one employee's status on a day.
type EmployeeAttendanceDay struct {
	Date   string           `json:"date"`
	Status AttendanceStatus `json:"status"`
}

// AttendanceStats summarizes an employee's month.
type AttendanceStats struct {
	TotalDays            int `json:"totalDays"`
	PresentDays          int `json:"presentDays"`
	AbsentDays           int `json:"absentDays"`
	AttendancePercentage int `json:"attendancePercentage"`
}

// SummarizeAttendance computes stats for a list of days. The percentage is
// rounded to the nearest integer and is 0 when there are no days.
func SummarizeAttendance(days []EmployeeAttendanceDay) AttendanceStats {
	stats := AttendanceStats{TotalDays: len(days)}
	for _, day := range days {
		if day.Status == AttendancePresent {
			stats.PresentDays++
		}
	}
	stats.AbsentDays = stats.TotalDays - stats.PresentDays
	if stats.TotalDays > 0 {
		stats.AttendancePercentage = (stats.PresentDays*200 + stats.TotalDays) / (stats.TotalDays * 2)
	}
	return stats
}
