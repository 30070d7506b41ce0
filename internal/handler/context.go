package handler

type ContextKey string

var (
	RoleCtxKey       ContextKey = "role"
	SubCtxKey        ContextKey = "sub"
	MyInfoCtx        ContextKey = "myInfo"
	StaffInfoCtx     ContextKey = "staffInfo"
	ShiftTemplateCtx ContextKey = "shiftTemplate"
	AssignmentCtx    ContextKey = "assignment"
)
