package daemon

// NewSupervisorWithPPID creates a Supervisor that reads the parent pid from getppid.
func NewSupervisorWithPPID(getppid func() int) *Supervisor {
	return newSupervisor(getppid)
}
