// internal/handlers/common.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/netflix100plus/admin-console/internal/i18n"
	"github.com/netflix100plus/admin-console/internal/table"
	"github.com/netflix100plus/admin-console/internal/utils"
)

// bindJSON decodes and validates the request body, answering 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)

	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}

func pathID(c *gin.Context) (int64, bool) {
	lang := utils.GetLangFromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "id"), nil)
		return 0, false
	}
	return id, true
}

// queryInt reads a positive integer query parameter.
func queryInt(c *gin.Context, key string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

// tableMeta is the meta block of a client-side table listing.
func tableMeta[T any](view table.View[T]) gin.H {
	return gin.H{
		"pagination": gin.H{
			"pageIndex": view.PageIndex,
			"pageSize":  view.PageSize,
			"pageCount": view.PageCount,
			"rowCount":  view.RowCount,
		},
		"rowIds":  view.RowIDs,
		"sorting": view.Sorting,
		"filters": view.Filters,
		"columns": view.Columns,
		"facets":  view.Facets,
	}
}
