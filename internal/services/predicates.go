package services

import (
	"fmt"

	"github.com/localnerve/publishdb/internal/models"
	"gorm.io/gorm/clause"
)

// visibility is the SQL form of models.VisibilityRule.Visible.
func visibility(table string, rule models.VisibilityRule) clause.Expr {
	status := fmt.Sprintf("%s.publish_status = ?", table)
	flag := fmt.Sprintf("%s.is_visible = ?", table)
	switch rule {
	case models.VisibleByStatus:
		return clause.Expr{SQL: status, Vars: []interface{}{models.PublishStatusPublished}}
	case models.VisibleByFlag:
		return clause.Expr{SQL: flag, Vars: []interface{}{true}}
	default:
		return clause.Expr{
			SQL:  "(" + status + " AND " + flag + ")",
			Vars: []interface{}{models.PublishStatusPublished, true},
		}
	}
}

// afterPage matches rows sorting after p in archive order; inclusive also matches p.
func afterPage(table string, p models.Page, inclusive bool) clause.Expr {
	return rangeExpr(table, p, ">", inclusive)
}

// beforePage matches rows sorting before p in archive order; inclusive also matches p.
func beforePage(table string, p models.Page, inclusive bool) clause.Expr {
	return rangeExpr(table, p, "<", inclusive)
}

func rangeExpr(table string, p models.Page, op string, inclusive bool) clause.Expr {
	slugOp := op
	if inclusive {
		slugOp += "="
	}
	at := models.ArchiveTime(p.PublishDate)
	return clause.Expr{
		SQL: fmt.Sprintf("(%[1]s.publish_date %[2]s ? OR (%[1]s.publish_date = ? AND %[1]s.slug %[3]s ?))",
			table, op, slugOp),
		Vars: []interface{}{at, at, p.Slug},
	}
}
