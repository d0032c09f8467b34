package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	dbmodels "task-exchange-backend/models/db"
)

type Provider interface {
	// ExportPointLedger выгрузка журнала баллов сотрудника в xlsx
	ExportPointLedger(list []dbmodels.PointTransaction) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var ledgerHeaders = []string{"Дата", "Тип операции", "Баллы", "Комментарий"}

var pointKindHumanName = map[dbmodels.PointTransactionKind]string{
	dbmodels.PointKindCompletion: "Выполнение задачи",
	dbmodels.PointKindPenalty:    "Штраф за просрочку",
	dbmodels.PointKindAdjustment: "Корректировка",
}

func (i impl) ExportPointLedger(list []dbmodels.PointTransaction) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, ledgerHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeLedgerData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Баллы")
	return f.WriteToBuffer()
}

func writeLedgerData(f *excelize.File, sheet string, list []dbmodels.PointTransaction, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(ledgerHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Дата"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format("02.01.2006 15:04")); err != nil {
			return row, err
		}

		// "Тип операции"
		col++
		kind := pointKindHumanName[item.Kind]
		if kind == "" {
			kind = string(item.Kind)
		}
		if err := writeColumn(f, sheet, col, row, kind); err != nil {
			return row, err
		}

		// "Баллы"
		col++
		if err := writeColumn(f, sheet, col, row, item.Amount); err != nil {
			return row, err
		}

		// "Комментарий"
		col++
		if err := writeColumn(f, sheet, col, row, item.Comment); err != nil {
			return row, err
		}
	}
	return row, nil
}
