// Package repository provides the generic table-parameterized CRUD
// primitives shared by all resource handlers. The table is bound at compile
// time through the model type parameter, so no user input can ever reach
// identifier position. Column names passed to FindBy/DeleteBy/UpdateBy must
// come from hard-coded call sites; values are always bound parameters.
package repository

import "gorm.io/gorm"

// ListAll returns every row of T's table.
func ListAll[T any](db *gorm.DB) ([]T, error) {
	var rows []T
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindBy returns all rows where column equals value.
func FindBy[T any](db *gorm.DB, column string, value any) ([]T, error) {
	var rows []T
	if err := db.Where(column+" = ?", value).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Insert creates row and fills in its generated fields.
func Insert[T any](db *gorm.DB, row *T) error {
	return db.Create(row).Error
}

// DeleteBy removes all rows where column equals value and reports how many.
func DeleteBy[T any](db *gorm.DB, column string, value any) (int64, error) {
	res := db.Where(column+" = ?", value).Delete(new(T))
	return res.RowsAffected, res.Error
}

// UpdateBy applies updates to all rows where column equals value.
func UpdateBy[T any](db *gorm.DB, column string, value any, updates map[string]any) (int64, error) {
	res := db.Model(new(T)).Where(column+" = ?", value).Updates(updates)
	return res.RowsAffected, res.Error
}

// UpdateOwned updates the row with the given id only if ownerID matches its
// user_id. The single predicate doubles as the authorization check: zero
// affected rows means not found or not owned.
func UpdateOwned[T any](db *gorm.DB, id, ownerID uint, updates map[string]any) (int64, error) {
	res := db.Model(new(T)).Where("id = ? AND user_id = ?", id, ownerID).Updates(updates)
	return res.RowsAffected, res.Error
}

// DeleteOwned removes the row with the given id only if ownerID matches.
func DeleteOwned[T any](db *gorm.DB, id, ownerID uint) (int64, error) {
	res := db.Where("id = ? AND user_id = ?", id, ownerID).Delete(new(T))
	return res.RowsAffected, res.Error
}
