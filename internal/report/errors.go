package report

import "errors"

// ErrRender возвращается, когда документ не удалось сформировать
var ErrRender = errors.New("report: render failed")
