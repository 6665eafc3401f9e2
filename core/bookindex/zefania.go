package bookindex

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/DailyBread/core/canon"
	dberrors "github.com/FocuswithJustin/DailyBread/core/errors"
)

// Compiled once; the expressions are static.
var (
	zefBookExpr    = xpath.MustCompile("//BIBLEBOOK")
	zefChapterExpr = xpath.MustCompile("CHAPTER")
	zefVerseExpr   = xpath.MustCompile("VERS")
)

// ParseZefania builds an Index from a Zefania XML Bible
// (XMLBIBLE/BIBLEBOOK/CHAPTER/VERS). Book keys come from mapping by the
// bnumber attribute, falling back to the bname attribute when bnumber is
// absent or outside the mapping.
func ParseZefania(data []byte, mapping canon.Mapping) (*Index, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, dberrors.NewParse("XML", "", err)
	}

	bookNodes := xmlquery.QuerySelectorAll(doc, zefBookExpr)
	if len(bookNodes) == 0 {
		return nil, &dberrors.ParseError{Format: "XML", Message: "no BIBLEBOOK elements"}
	}

	books := make(map[string]Book, len(bookNodes))
	for _, bn := range bookNodes {
		name, err := zefaniaBookName(bn, mapping)
		if err != nil {
			return nil, err
		}

		book := books[name]
		if book == nil {
			book = make(Book)
			books[name] = book
		}

		for _, cn := range xmlquery.QuerySelectorAll(bn, zefChapterExpr) {
			cnum := strings.TrimSpace(cn.SelectAttr("cnumber"))
			if cnum == "" {
				return nil, &dberrors.ParseError{Format: "XML", Message: fmt.Sprintf("%s: CHAPTER without cnumber", name)}
			}
			chapter := book[cnum]
			if chapter == nil {
				chapter = make(Chapter)
				book[cnum] = chapter
			}
			for _, vn := range xmlquery.QuerySelectorAll(cn, zefVerseExpr) {
				vnum := strings.TrimSpace(vn.SelectAttr("vnumber"))
				if vnum == "" {
					return nil, &dberrors.ParseError{Format: "XML", Message: fmt.Sprintf("%s %s: VERS without vnumber", name, cnum)}
				}
				chapter[vnum] = strings.Join(strings.Fields(vn.InnerText()), " ")
			}
		}
	}

	return New(books), nil
}

func zefaniaBookName(n *xmlquery.Node, mapping canon.Mapping) (string, error) {
	if num := strings.TrimSpace(n.SelectAttr("bnumber")); num != "" {
		order, err := strconv.Atoi(num)
		if err != nil {
			return "", dberrors.NewParse("XML", "", fmt.Errorf("invalid bnumber %q: %w", num, err))
		}
		if b, ok := mapping.ByOrder(order); ok {
			return b.Name, nil
		}
	}
	if name := strings.TrimSpace(n.SelectAttr("bname")); name != "" {
		return name, nil
	}
	return "", &dberrors.ParseError{Format: "XML", Message: "BIBLEBOOK has neither a known bnumber nor a bname"}
}
