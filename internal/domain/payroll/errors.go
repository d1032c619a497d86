package payroll

import "errors"

var (
	ErrPeriodNotFound         = errors.New("payroll period not found")
	ErrPeriodAlreadyExists    = errors.New("payroll period already exists for this date range")
	ErrPeriodNotProcessable   = errors.New("payroll period is not in a processable status")
	ErrPeriodNotCompleted     = errors.New("payroll period has not completed processing")
	ErrRunNotFound            = errors.New("payroll run not found")
	ErrDetailNotFound         = errors.New("payroll detail not found")
	ErrDetailAlreadyExists    = errors.New("payroll detail already exists for this employee and period")
	ErrInvalidStateTransition = errors.New("invalid state transition")
)
