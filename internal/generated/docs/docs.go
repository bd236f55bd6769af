// Package docs registers the API document with swag so echo-swagger can serve it
// under /swagger/*.
package docs

import (
	"fmt"

	"textile/internal/generated/servers"

	"github.com/swaggo/swag"
)

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Textile orders",
	Description:      "Order lifecycle, supplier settlement and audit trail of a textile workshop.",
	InfoInstanceName: "swagger",
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	SwaggerInfo.SwaggerTemplate = docTemplate()
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// docTemplate renders the embedded OpenAPI document as JSON. The document is
// compiled into the binary, so a failure here is a build defect.
func docTemplate() string {
	doc, err := servers.GetSwagger()
	if err != nil {
		panic(err)
	}

	raw, err := doc.MarshalJSON()
	if err != nil {
		panic(fmt.Errorf("encoding openapi document: %w", err))
	}

	return string(raw)
}
