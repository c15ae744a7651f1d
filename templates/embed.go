// Package templates 内嵌邮件服务使用的 HTML 模板
package templates

import "embed"

//go:embed *.html
var FS embed.FS
