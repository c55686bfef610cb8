package models

// Role defines the closed set of user roles. Every user carries exactly one
// role and owns at most one matching profile row (Student, Professor, Company).
type Role string

const (
	RoleStudent   Role = "student"
	RoleProfessor Role = "professor"
	RoleCompany   Role = "company"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleProfessor, RoleCompany, RoleAdmin:
		return true
	}
	return false
}

// TransactionKind tags a ledger movement.
type TransactionKind string

const (
	// TransactionTransfer is a professor-to-student grant.
	TransactionTransfer TransactionKind = "transfer"
	// TransactionSemesterCredit is a system credit to a professor (no sender).
	TransactionSemesterCredit TransactionKind = "semester_credit"
	// TransactionRedemption is a student-to-company debit backing a redemption.
	TransactionRedemption TransactionKind = "redemption"
)

// RedemptionStatus is the lifecycle state of a redemption coupon.
type RedemptionStatus string

const (
	RedemptionPending   RedemptionStatus = "pending"
	RedemptionCompleted RedemptionStatus = "completed"
	RedemptionCancelled RedemptionStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s RedemptionStatus) Valid() bool {
	switch s {
	case RedemptionPending, RedemptionCompleted, RedemptionCancelled:
		return true
	}
	return false
}
